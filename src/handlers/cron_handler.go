package handlers

import (
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/mail"
	"github.com/Hardik8491/Gold-Coin-sub001/src/ratelimit"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

const reminderHorizonDays = 3

// reminderWindow is the inclusive due-date range for one reminder run.
// The lower bound is today's calendar date rather than the current
// instant: due dates carry no time of day, so anchoring on NOW() would
// skip every bill due today once the clock passes midnight.
func reminderWindow(now time.Time) (start, end time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 0, reminderHorizonDays)
	return start, end
}

// BillReminders is hit by the external scheduler. It is guarded by a
// shared secret instead of a user token. Per-bill failures are logged and
// skipped so one bad address never blocks the rest of the batch.
func BillReminders(pool *pgxpool.Pool, mailer *mail.Client, emailLimiter *ratelimit.Limiter, cronSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := r.URL.Query().Get("cronSecret")
		if cronSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(cronSecret)) != 1 {
			util.WriteError(w, http.StatusUnauthorized, util.KindUnauthorized, "invalid cron secret")
			return
		}

		start, end := reminderWindow(time.Now())
		reminders, err := db.GetBillsDueForReminder(r.Context(), pool, start, end)
		if err != nil {
			log.Printf("ERROR: Failed to query bills due for reminders: %v", err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to query bills")
			return
		}

		sent := 0
		for _, reminder := range reminders {
			if !emailLimiter.Allow(fmt.Sprintf("%d", reminder.Bill.UserID)) {
				log.Printf("INFO: Email limit reached for user %d, skipping reminder for bill %d", reminder.Bill.UserID, reminder.Bill.ID)
				continue
			}

			subject := fmt.Sprintf("Reminder: %s is due %s", reminder.Bill.Name, reminder.Bill.DueDate.Format("Jan 2"))
			body := fmt.Sprintf(
				"<p>Hi %s,</p><p>Your bill <strong>%s</strong> for $%s is due on %s.</p>",
				reminder.UserName, reminder.Bill.Name, reminder.Bill.Amount, reminder.Bill.DueDate.Format("January 2, 2006"),
			)
			if err := mailer.Send(r.Context(), reminder.UserEmail, subject, body); err != nil {
				log.Printf("ERROR: Failed to send reminder for bill %d to user %d: %v", reminder.Bill.ID, reminder.Bill.UserID, err)
				continue
			}

			if err := db.MarkBillReminded(r.Context(), pool, reminder.Bill.ID); err != nil {
				log.Printf("ERROR: Failed to mark bill %d reminded: %v", reminder.Bill.ID, err)
				continue
			}
			sent++
		}

		log.Printf("INFO: Bill reminder run complete: %d/%d sent", sent, len(reminders))
		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message":       "Bill reminders processed",
			"remindersSent": sent,
			"date":          time.Now().UTC().Format("2006-01-02"),
		})
	}
}
