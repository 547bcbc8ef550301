// ======================================================
// REMINDER WORKER
// ======================================================
// Sweeps for appointments starting ~15 minutes out and texts the customer
// and the barber. Delivery is at-most-once: an appointment is marked as
// reminded even when a send fails, so a flaky provider can never spam the
// same customer on every tick.

package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nallenclassics/barber-booking/internal/models"
	"github.com/nallenclassics/barber-booking/internal/notify"
)

// Store lists appointments due for a reminder and records dispatch.
type Store interface {
	// Due returns unreminded appointments with start in [from, to],
	// with barber and service loaded.
	Due(ctx context.Context, from, to time.Time) ([]models.Appointment, error)

	MarkSent(ctx context.Context, appointmentID uint) error
}

type Worker struct {
	store    Store
	notifier notify.Notifier

	// fallbackPhone receives the barber-side reminder when the barber's
	// own number is empty.
	fallbackPhone string

	interval  time.Duration
	lookahead time.Duration
	window    time.Duration

	now func() time.Time
}

type Config struct {
	Interval      time.Duration
	Lookahead     time.Duration
	Window        time.Duration
	FallbackPhone string
}

func NewWorker(store Store, notifier notify.Notifier, cfg Config) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = 15 * time.Minute
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &Worker{
		store:         store,
		notifier:      notifier,
		fallbackPhone: cfg.FallbackPhone,
		interval:      cfg.Interval,
		lookahead:     cfg.Lookahead,
		window:        cfg.Window,
		now:           time.Now,
	}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				log.Println("reminder sweep failed:", err)
			}
		}
	}
}

// Sweep runs one pass: everything starting lookahead±window from now.
func (w *Worker) Sweep(ctx context.Context) error {
	now := w.now()
	from := now.Add(w.lookahead - w.window)
	to := now.Add(w.lookahead + w.window)

	due, err := w.store.Due(ctx, from, to)
	if err != nil {
		return err
	}

	for _, ap := range due {
		w.remind(ctx, ap)

		if err := w.store.MarkSent(ctx, ap.ID); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) remind(ctx context.Context, ap models.Appointment) {
	customerMsg := "15 minutes to your appointment. Make sure you will be there on time."
	if err := w.notifier.Send(ctx, ap.CustomerPhone, customerMsg); err != nil {
		log.Printf("reminder to customer %s failed: %v", ap.CustomerPhone, err)
	}

	barberPhone := ap.Barber.Phone
	if barberPhone == "" {
		barberPhone = w.fallbackPhone
	}
	if barberPhone == "" {
		return
	}

	barberMsg := fmt.Sprintf(
		"In 15 minutes %s visits the shop to do the %s.",
		ap.CustomerName,
		ap.Service.Name,
	)
	if err := w.notifier.Send(ctx, barberPhone, barberMsg); err != nil {
		log.Printf("reminder to barber %s failed: %v", barberPhone, err)
	}
}
