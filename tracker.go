package suntrack

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"cloudeng.io/logging/ctxlog"
)

// Snapshot is one computed view: a Series and the Events derived from it.
// It is replaced wholesale, never modified.
type Snapshot struct {
	Location Coordinates
	Series   *Series
	Events   Events
	Built    time.Time
}

// Tracker holds the current Snapshot for a location. Readers always see a
// complete Snapshot; Recompute swaps in a new one.
type Tracker struct {
	mu      sync.Mutex // serializes location changes and rebuilds
	loc     Coordinates
	current atomic.Pointer[Snapshot]
}

// NewTracker returns a Tracker for loc with no snapshot yet.
func NewTracker(loc Coordinates) (*Tracker, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{loc: loc}, nil
}

// Location returns the tracker's current location.
func (t *Tracker) Location() Coordinates {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loc
}

// SetLocation changes the location and drops the current snapshot, which
// no longer describes it.
func (t *Tracker) SetLocation(loc Coordinates) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loc = loc
	t.current.Store(nil)
	return nil
}

// Recompute builds a new Series for [start, end], detects its events and
// makes the result current. On error the previous snapshot is kept.
func (t *Tracker) Recompute(ctx context.Context, start, end time.Time) (*Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	logger := ctxlog.Logger(ctx)
	series, err := BuildSeries(t.loc, start, end)
	if err != nil {
		logger.Warn("series rebuild failed", "location", t.loc.String(), "error", err)
		return nil, err
	}
	snap := &Snapshot{
		Location: t.loc,
		Series:   series,
		Events:   DetectEvents(series),
		Built:    time.Now(),
	}
	t.current.Store(snap)
	from, to := series.Range()
	logger.Debug("series rebuilt",
		"location", t.loc.String(),
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
		"days", series.Len(),
		"equinoxes", len(snap.Events.Equinoxes))
	return snap, nil
}

// Current returns the current snapshot, or nil if none has been built.
func (t *Tracker) Current() *Snapshot {
	return t.current.Load()
}

// At returns the day of the current snapshot that q falls on.
func (t *Tracker) At(q time.Time) (SolarDay, error) {
	snap := t.current.Load()
	if snap == nil {
		return SolarDay{}, ErrEmptySeries
	}
	return LocateNearest(snap.Series, q)
}
