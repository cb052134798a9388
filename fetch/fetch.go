// Package fetch retrieves raw result-page HTML from the racing site. It is
// deliberately dumb: a fixed inter-request pause, a bounded immediate
// retry count with no backoff, and nothing else. Failures surface to the
// per-race caller, which logs and moves on.
package fetch

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the results endpoint. Pages are addressed by query
// parameters: date (YYYY/MM/DD), racecourse code and race number.
const DefaultBaseURL = "https://racing.hkjc.com/racing/information/English/Racing/LocalResults.aspx"

// Config holds the retrieval knobs.
type Config struct {
	BaseURL string
	// Fixed pause before every request, the rate limit toward the site.
	Pause time.Duration
	// Attempt ceiling per page; each retry is immediate.
	MaxAttempts int
	// Per-request timeout, the only deadline in the system.
	Timeout time.Duration
}

// DefaultConfig returns the retrieval defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Pause:       2 * time.Second,
		MaxAttempts: 3,
		Timeout:     30 * time.Second,
	}
}

// Client fetches result pages.
type Client struct {
	http   *resty.Client
	config Config
}

// NewClient creates a page-retrieval client from the given config. A zero
// BaseURL, MaxAttempts or Timeout falls back to the default; a zero Pause
// is honored as-is, so callers that want the rate-limit pause must set it.
func NewClient(config Config) *Client {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	http := resty.New().
		SetTimeout(config.Timeout).
		SetHeader("User-Agent", "racefeed/1.0")

	return &Client{http: http, config: config}
}

// RacePage fetches the raw HTML for one race, retrying immediately up to
// the attempt ceiling. The returned error, if any, belongs to this one
// race; callers log it and continue with the next race.
func (c *Client) RacePage(date time.Time, course string, raceNo int) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		if c.config.Pause > 0 {
			time.Sleep(c.config.Pause)
		}

		resp, err := c.http.R().
			SetQueryParam("RaceDate", date.Format("2006/01/02")).
			SetQueryParam("Racecourse", course).
			SetQueryParam("RaceNo", fmt.Sprintf("%d", raceNo)).
			Get(c.config.BaseURL)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode() != 200 {
			lastErr = fmt.Errorf("HTTP error: %d", resp.StatusCode())
			continue
		}
		return string(resp.Body()), nil
	}
	return "", fmt.Errorf("failed to fetch %s R%d after %d attempts: %w", course, raceNo, c.config.MaxAttempts, lastErr)
}
