// workers/autopick_sweeper.go
package workers

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fantasy-draft/models"
	"fantasy-draft/services"

	"github.com/go-co-op/gocron/v2"
)

// DraftDriver is the part of the draft service the sweeper needs.
type DraftDriver interface {
	StalledDrafts(ctx context.Context, timeout time.Duration) ([]models.Event, error)
	AutoPick(ctx context.Context, eventID string) (*services.AutoPickResult, error)
}

// AutoPickSweeper fills picks whose clock ran out. Each (event, current_pick)
// is handed to the auto-pick procedure at most once; a failed call is logged
// and left for an operator.
type AutoPickSweeper struct {
	drafts   DraftDriver
	timeout  time.Duration
	interval time.Duration

	mu        sync.Mutex
	attempted map[string]int // event id -> current_pick already attempted
}

func NewAutoPickSweeper(drafts DraftDriver, timeout, interval time.Duration) *AutoPickSweeper {
	return &AutoPickSweeper{
		drafts:    drafts,
		timeout:   timeout,
		interval:  interval,
		attempted: make(map[string]int),
	}
}

// Start schedules the sweep and shuts the scheduler down when ctx ends.
func (w *AutoPickSweeper) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() { w.Sweep(ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule auto-pick sweep: %w", err)
	}
	sched.Start()
	log.Printf("🔁 [AUTOPICK] sweeper running every %s (timeout %s)", w.interval, w.timeout)

	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			log.Printf("⚠️ [AUTOPICK] scheduler shutdown: %v", err)
		}
		log.Println("⏹️ [AUTOPICK] sweeper stopped")
	}()
	return nil
}

// Sweep runs one pass and returns the number of auto-pick calls made.
func (w *AutoPickSweeper) Sweep(ctx context.Context) int {
	stalled, err := w.drafts.StalledDrafts(ctx, w.timeout)
	if err != nil {
		log.Printf("[AUTOPICK] DB error: %v", err)
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	live := make(map[string]struct{}, len(stalled))
	calls := 0
	for _, event := range stalled {
		live[event.ID] = struct{}{}
		if pick, ok := w.attempted[event.ID]; ok && pick == event.CurrentPick {
			continue
		}
		w.attempted[event.ID] = event.CurrentPick
		calls++
		if _, err := w.drafts.AutoPick(ctx, event.ID); err != nil {
			log.Printf("❌ [AUTOPICK] event %s pick %d not filled: %v", event.ID, event.CurrentPick, err)
			continue
		}
		log.Printf("✅ [AUTOPICK] event %s pick %d filled after timeout", event.ID, event.CurrentPick)
	}
	for id := range w.attempted {
		if _, ok := live[id]; !ok {
			delete(w.attempted, id)
		}
	}
	return calls
}
