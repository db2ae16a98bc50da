package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

type fakeStore struct {
	alerts []models.Alert
}

func (f *fakeStore) ListActive(ctx context.Context) ([]models.Alert, error) {
	out := make([]models.Alert, 0, len(f.alerts))
	for _, a := range f.alerts {
		if a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkTriggered(ctx context.Context, id string, at time.Time) error {
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			f.alerts[i].Triggered = true
			f.alerts[i].TriggeredAt = &at
		}
	}
	return nil
}

func (f *fakeStore) ResetTrigger(ctx context.Context, id string) error {
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			f.alerts[i].Triggered = false
			f.alerts[i].TriggeredAt = nil
		}
	}
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Send(msg string) { f.messages = append(f.messages, msg) }

func belowAlert(id string, target, buffer float64) models.Alert {
	return models.Alert{
		ID: id, Label: "dip", TargetPrice: target, ResetBuffer: buffer,
		Direction: models.AlertDirectionBelow, Active: true,
	}
}

func TestEvaluateFiresOnCrossing(t *testing.T) {
	store := &fakeStore{alerts: []models.Alert{belowAlert("a1", 7200, 100)}}
	notify := &fakeNotifier{}
	eng := NewEngine(store, notify)

	fired, err := eng.Evaluate(context.Background(), 7150)
	if err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Fatalf("expected 1 fired, got %d", fired)
	}
	if len(notify.messages) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notify.messages))
	}
	if !store.alerts[0].Triggered {
		t.Fatal("alert should be marked triggered")
	}
	t.Logf("Notification: %s", notify.messages[0])
}

func TestEvaluateFiresOncePerCrossing(t *testing.T) {
	store := &fakeStore{alerts: []models.Alert{belowAlert("a1", 7200, 100)}}
	notify := &fakeNotifier{}
	eng := NewEngine(store, notify)

	if _, err := eng.Evaluate(context.Background(), 7150); err != nil {
		t.Fatal(err)
	}
	// Price stays below target: no second notification.
	if _, err := eng.Evaluate(context.Background(), 7100); err != nil {
		t.Fatal(err)
	}
	if len(notify.messages) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(notify.messages))
	}
}

func TestEvaluateReArmsPastBuffer(t *testing.T) {
	store := &fakeStore{alerts: []models.Alert{belowAlert("a1", 7200, 100)}}
	notify := &fakeNotifier{}
	eng := NewEngine(store, notify)

	if _, err := eng.Evaluate(context.Background(), 7150); err != nil {
		t.Fatal(err)
	}

	// Inside the buffer: stays triggered.
	if _, err := eng.Evaluate(context.Background(), 7250); err != nil {
		t.Fatal(err)
	}
	if !store.alerts[0].Triggered {
		t.Fatal("alert should remain triggered inside the buffer")
	}

	// Past target + buffer: re-arms.
	if _, err := eng.Evaluate(context.Background(), 7350); err != nil {
		t.Fatal(err)
	}
	if store.alerts[0].Triggered {
		t.Fatal("alert should re-arm past the buffer")
	}

	// Crossing again fires again.
	fired, err := eng.Evaluate(context.Background(), 7100)
	if err != nil {
		t.Fatal(err)
	}
	if fired != 1 || len(notify.messages) != 2 {
		t.Fatalf("expected second firing, fired=%d messages=%d", fired, len(notify.messages))
	}
}

func TestEvaluateAboveDirection(t *testing.T) {
	store := &fakeStore{alerts: []models.Alert{{
		ID: "a2", Label: "rally", TargetPrice: 7800, ResetBuffer: 50,
		Direction: models.AlertDirectionAbove, Active: true,
	}}}
	notify := &fakeNotifier{}
	eng := NewEngine(store, notify)

	if fired, _ := eng.Evaluate(context.Background(), 7799); fired != 0 {
		t.Fatal("should not fire below target")
	}
	if fired, _ := eng.Evaluate(context.Background(), 7800); fired != 1 {
		t.Fatal("should fire at target")
	}
	// Recede below target - buffer re-arms.
	if _, err := eng.Evaluate(context.Background(), 7749); err != nil {
		t.Fatal(err)
	}
	if store.alerts[0].Triggered {
		t.Fatal("above alert should re-arm below target minus buffer")
	}
}

func TestEvaluateSkipsInactive(t *testing.T) {
	a := belowAlert("a1", 7200, 100)
	a.Active = false
	store := &fakeStore{alerts: []models.Alert{a}}
	notify := &fakeNotifier{}
	eng := NewEngine(store, notify)

	fired, err := eng.Evaluate(context.Background(), 7000)
	if err != nil {
		t.Fatal(err)
	}
	if fired != 0 || len(notify.messages) != 0 {
		t.Fatal("inactive alerts must not fire")
	}
}
