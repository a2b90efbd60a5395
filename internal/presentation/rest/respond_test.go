package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigecred/sgcred/internal/domain/port"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("find loan: %w", port.ErrNotFound), 404},
		{"conflict", fmt.Errorf("client has active loans: %w", port.ErrConflict), 409},
		{"storage unavailable", fmt.Errorf("query: %w", port.ErrStorageUnavailable), 503},
		{"validation", errors.New("principal must be positive"), 422},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("accepts calendar dates", func(t *testing.T) {
		d, err := parseDate("2025-02-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, bad := range []string{"15/02/2025", "2025-02-15T00:00:00Z", "", "yesterday"} {
			_, err := parseDate(bad)
			assert.Error(t, err, "input %q", bad)
		}
	})
}
