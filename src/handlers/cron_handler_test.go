package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminderWindow(t *testing.T) {
	// Late in the day, when a NOW()-anchored lower bound would already
	// have passed every bill due today.
	now := time.Date(2026, 8, 30, 23, 45, 12, 0, time.UTC)
	start, end := reminderWindow(now)

	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), end)

	inWindow := func(due time.Time) bool {
		return !due.Before(start) && !due.After(end)
	}

	cases := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"due yesterday", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), false},
		{"due today", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), true},
		{"due on horizon day", time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), true},
		{"due past horizon", time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inWindow(tc.due))
		})
	}
}

// The secret gate runs before any database or mailer access, so nil
// collaborators are safe here.
func TestBillReminders_SecretGate(t *testing.T) {
	handler := BillReminders(nil, nil, nil, "expected-secret")

	t.Run("missing secret", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cron/bill-reminders", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("wrong secret", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cron/bill-reminders?cronSecret=guess", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

// An unset CRON_SECRET must fail closed rather than letting every caller
// through.
func TestBillReminders_EmptyConfiguredSecret(t *testing.T) {
	handler := BillReminders(nil, nil, nil, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cron/bill-reminders?cronSecret=", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
