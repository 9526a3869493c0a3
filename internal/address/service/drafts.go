package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	dErrors "givebridge/pkg/domain-errors"
)

const (
	DefaultDraftIdleTTL    = 30 * time.Minute
	DefaultJanitorInterval = time.Minute
)

type draft struct {
	tracker  *Tracker
	lastUsed time.Time
}

// Drafts holds one Tracker per in-progress institution registration so the
// address field of each form resolves independently. Drafts untouched for
// longer than the idle TTL are closed by Sweep.
type Drafts struct {
	resolver        AddressResolver
	trackerOpts     []TrackerOption
	idleTTL         time.Duration
	janitorInterval time.Duration
	now             func() time.Time
	logger          *slog.Logger

	mu     sync.Mutex
	drafts map[string]*draft
}

type DraftsOption func(*Drafts)

func WithIdleTTL(ttl time.Duration) DraftsOption {
	return func(d *Drafts) {
		if ttl > 0 {
			d.idleTTL = ttl
		}
	}
}

func WithJanitorInterval(interval time.Duration) DraftsOption {
	return func(d *Drafts) {
		if interval > 0 {
			d.janitorInterval = interval
		}
	}
}

// WithTrackerOptions applies opts to every tracker the set creates.
func WithTrackerOptions(opts ...TrackerOption) DraftsOption {
	return func(d *Drafts) {
		d.trackerOpts = append(d.trackerOpts, opts...)
	}
}

func WithDraftsLogger(logger *slog.Logger) DraftsOption {
	return func(d *Drafts) {
		d.logger = logger
	}
}

// WithDraftsClock overrides the time source; used by tests.
func WithDraftsClock(now func() time.Time) DraftsOption {
	return func(d *Drafts) {
		d.now = now
	}
}

func NewDrafts(resolver AddressResolver, opts ...DraftsOption) *Drafts {
	d := &Drafts{
		resolver:        resolver,
		idleTTL:         DefaultDraftIdleTTL,
		janitorInterval: DefaultJanitorInterval,
		now:             time.Now,
		logger:          slog.Default(),
		drafts:          make(map[string]*draft),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Create opens a new draft and returns its id.
func (d *Drafts) Create() string {
	draftID := uuid.NewString()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drafts[draftID] = &draft{
		tracker:  NewTracker(d.resolver, d.trackerOpts...),
		lastUsed: d.now(),
	}
	return draftID
}

// Get returns the tracker of a live draft.
func (d *Drafts) Get(draftID string) (*Tracker, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dr, ok := d.drafts[draftID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "registration draft not found")
	}
	dr.lastUsed = d.now()
	return dr.tracker, nil
}

// Submit feeds a postal code into a draft's tracker.
func (d *Drafts) Submit(draftID, postalCode string) (uint64, error) {
	tracker, err := d.Get(draftID)
	if err != nil {
		return 0, err
	}
	return tracker.Submit(postalCode), nil
}

// Remove closes and forgets a draft; unknown ids are ignored.
func (d *Drafts) Remove(draftID string) {
	d.mu.Lock()
	dr, ok := d.drafts[draftID]
	delete(d.drafts, draftID)
	d.mu.Unlock()
	if ok {
		dr.tracker.Close()
	}
}

func (d *Drafts) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.drafts)
}

// Sweep closes drafts idle for longer than the TTL and returns how many it removed.
func (d *Drafts) Sweep() int {
	cutoff := d.now().Add(-d.idleTTL)
	var stale []*Tracker
	d.mu.Lock()
	for draftID, dr := range d.drafts {
		if dr.lastUsed.Before(cutoff) {
			stale = append(stale, dr.tracker)
			delete(d.drafts, draftID)
		}
	}
	d.mu.Unlock()

	for _, tracker := range stale {
		tracker.Close()
	}
	return len(stale)
}

// Run sweeps on every janitor tick until ctx is done, then closes all drafts.
func (d *Drafts) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.Close()
			return nil
		case <-ticker.C:
			if n := d.Sweep(); n > 0 {
				d.logger.DebugContext(ctx, "expired registration drafts", "count", n)
			}
		}
	}
}

// Close closes every draft.
func (d *Drafts) Close() {
	d.mu.Lock()
	all := d.drafts
	d.drafts = make(map[string]*draft)
	d.mu.Unlock()
	for _, dr := range all {
		dr.tracker.Close()
	}
}
