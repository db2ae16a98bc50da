// Package alerts evaluates user price alerts against freshly observed
// gold prices. Evaluation happens here, next to the data, so the
// dashboard frontend only ever reads alert state.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/pricemath"
)

// Store abstracts the alert persistence dependency so the engine can be
// tested without a real database.
type Store interface {
	ListActive(ctx context.Context) ([]models.Alert, error)
	MarkTriggered(ctx context.Context, id string, at time.Time) error
	ResetTrigger(ctx context.Context, id string) error
}

// Notifier delivers a triggered-alert message.
type Notifier interface {
	Send(msg string)
}

type Engine struct {
	store  Store
	notify Notifier
}

func NewEngine(store Store, notify Notifier) *Engine {
	return &Engine{store: store, notify: notify}
}

// Evaluate checks every active alert against the current INR-per-gram
// price. An alert fires once per crossing; after firing it stays quiet
// until the price recedes past its reset buffer, then re-arms.
// Returns the number of alerts that fired.
func (e *Engine) Evaluate(ctx context.Context, pricePerGram float64) (int, error) {
	active, err := e.store.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list alerts: %w", err)
	}

	fired := 0
	for _, a := range active {
		crossed := crossed(a, pricePerGram)

		switch {
		case crossed && !a.Triggered:
			now := time.Now()
			if err := e.store.MarkTriggered(ctx, a.ID, now); err != nil {
				fmt.Printf("[ALERTS] Mark triggered %s failed: %v\n", a.ID, err)
				continue
			}
			e.notify.Send(triggerMessage(a, pricePerGram))
			fired++

		case a.Triggered && receded(a, pricePerGram):
			if err := e.store.ResetTrigger(ctx, a.ID); err != nil {
				fmt.Printf("[ALERTS] Reset %s failed: %v\n", a.ID, err)
				continue
			}
			fmt.Printf("[ALERTS] Re-armed %q (price %.2f cleared the buffer)\n", a.Label, pricePerGram)
		}
	}

	return fired, nil
}

func crossed(a models.Alert, price float64) bool {
	if a.Direction == models.AlertDirectionAbove {
		return price >= a.TargetPrice
	}
	return price <= a.TargetPrice
}

// receded reports whether the price has moved back past the target by
// more than the reset buffer, which re-arms a triggered alert.
func receded(a models.Alert, price float64) bool {
	if a.Direction == models.AlertDirectionAbove {
		return price < a.TargetPrice-a.ResetBuffer
	}
	return price > a.TargetPrice+a.ResetBuffer
}

func triggerMessage(a models.Alert, price float64) string {
	label := a.Label
	if label == "" {
		label = "Price alert"
	}
	return fmt.Sprintf("%s: gold at %s (target %s %s)",
		label,
		pricemath.Format(price, pricemath.INRPerGram),
		a.Direction,
		pricemath.Format(a.TargetPrice, pricemath.INRPerGram),
	)
}
