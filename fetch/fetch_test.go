package fetch

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate(t *testing.T) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", "2025-05-04")
	require.NoError(t, err)
	return date
}

// TestRacePage_Success verifies the page query parameters and returned
// body on a clean fetch
func TestRacePage_Success(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"RaceDate":   r.URL.Query().Get("RaceDate"),
			"Racecourse": r.URL.Query().Get("Racecourse"),
			"RaceNo":     r.URL.Query().Get("RaceNo"),
		}
		w.Write([]byte("<html>race 4</html>"))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, MaxAttempts: 1})
	body, err := client.RacePage(testDate(t), "ST", 4)
	require.NoError(t, err)

	assert.Equal(t, "<html>race 4</html>", body)
	assert.Equal(t, map[string]string{
		"RaceDate":   "2025/05/04",
		"Racecourse": "ST",
		"RaceNo":     "4",
	}, gotQuery)
}

// TestRacePage_RetryThenSuccess verifies a transient server error is
// retried up to the attempt ceiling
func TestRacePage_RetryThenSuccess(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, MaxAttempts: 3})
	body, err := client.RacePage(testDate(t), "HV", 1)
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
	assert.Equal(t, 3, attempts)
}

// TestRacePage_ExhaustedAttempts verifies the ceiling is honored and the
// last failure is reported
func TestRacePage_ExhaustedAttempts(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, MaxAttempts: 2})
	_, err := client.RacePage(testDate(t), "ST", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, 2, attempts)
}

// TestNewClient_Defaults verifies which zero-valued config fields fall
// back and that the pause does not
func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, client.config.BaseURL)
	assert.Equal(t, 3, client.config.MaxAttempts)
	assert.Equal(t, 30*time.Second, client.config.Timeout)
	assert.Equal(t, time.Duration(0), client.config.Pause, "an unset pause stays off")
}
