package tracking

import (
	"context"
	"sync"
	"time"

	"vijayfix/models"

	"go.uber.org/zap"
)

// Route identifies one animation run. Starting a different Route cancels the
// current one.
type Route struct {
	From     models.Coordinate `json:"from"`
	To       models.Coordinate `json:"to"`
	Duration time.Duration     `json:"duration"`
}

// Snapshot is the tracker state as seen by a reader.
type Snapshot struct {
	Route    Route             `json:"route"`
	Position models.Coordinate `json:"position"`
	Progress float64           `json:"progress"`
	Active   bool              `json:"active"`
}

// Tracker moves a displayed coordinate from Route.From to Route.To on a fixed tick.
type Tracker struct {
	tick   time.Duration
	logger *zap.Logger

	// ctl serialises Start and Stop.
	ctl sync.Mutex

	mu       sync.Mutex
	onTick   func(Snapshot)
	snapshot Snapshot
	gen      int
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewTracker(tick time.Duration, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{tick: tick, logger: logger}
}

// OnTick registers a callback invoked after every position update.
func (t *Tracker) OnTick(fn func(Snapshot)) {
	t.mu.Lock()
	t.onTick = fn
	t.mu.Unlock()
}

// Start begins animating r. It is a no-op when r is already running.
func (t *Tracker) Start(r Route) {
	t.ctl.Lock()
	defer t.ctl.Unlock()

	t.mu.Lock()
	if t.snapshot.Active && t.snapshot.Route == r {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	t.stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.cancel = cancel
	t.done = done
	t.snapshot = Snapshot{Route: r, Position: r.From, Active: true}
	t.mu.Unlock()

	t.logger.Debug("Tracking started",
		zap.Float64("fromLat", r.From.Lat), zap.Float64("fromLng", r.From.Lng),
		zap.Float64("toLat", r.To.Lat), zap.Float64("toLng", r.To.Lng),
		zap.Duration("duration", r.Duration))

	go t.run(ctx, gen, r, done)
}

// Stop cancels the running animation, if any, and waits for it to exit.
// The last position is kept.
func (t *Tracker) Stop() {
	t.ctl.Lock()
	defer t.ctl.Unlock()
	t.stop()
}

func (t *Tracker) stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.snapshot.Active = false
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Snapshot returns the current position and progress.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot
}

func (t *Tracker) run(ctx context.Context, gen int, r Route, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		progress := 1.0
		if r.Duration > 0 {
			progress = float64(time.Since(start)) / float64(r.Duration)
		}
		if progress > 1 {
			progress = 1
		}

		t.mu.Lock()
		if t.gen != gen {
			t.mu.Unlock()
			return
		}
		t.snapshot.Position = Interpolate(r.From, r.To, progress)
		t.snapshot.Progress = progress
		finished := progress >= 1
		if finished {
			t.snapshot.Active = false
			t.cancel, t.done = nil, nil
		}
		snap, cb := t.snapshot, t.onTick
		t.mu.Unlock()

		if cb != nil {
			cb(snap)
		}
		if finished {
			t.logger.Debug("Tracking finished")
			return
		}
	}
}
