package service

import (
	"context"
	"sync"
	"time"

	"givebridge/internal/address/models"
	"givebridge/internal/validation"
	dErrors "givebridge/pkg/domain-errors"
)

const DefaultDebounce = 400 * time.Millisecond

// AddressResolver is what a Tracker drives; *Resolver satisfies it.
type AddressResolver interface {
	Resolve(ctx context.Context, postalCode string) (*models.Resolution, error)
}

// Outcome is the settled result of one submission.
type Outcome struct {
	Token      uint64
	PostalCode string
	Resolution *models.Resolution
	Err        error
}

type submission struct {
	token uint64
	done  chan struct{}
	once  sync.Once
}

func (s *submission) finish() {
	s.once.Do(func() { close(s.done) })
}

// Tracker keeps the latest address resolution for a single postal code field.
// Every Submit issues a higher token and supersedes all earlier submissions:
// their debounce is cancelled, their context is cancelled, and any result
// they still produce is dropped when its token no longer matches.
type Tracker struct {
	resolver AddressResolver
	debounce time.Duration

	mu      sync.Mutex
	token   uint64
	current *submission
	cancel  context.CancelFunc
	latest  *Outcome
	closed  bool

	base       context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup
}

type TrackerOption func(*Tracker)

// WithDebounce sets how long a submission waits for a newer one before resolving.
func WithDebounce(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d >= 0 {
			t.debounce = d
		}
	}
}

func NewTracker(resolver AddressResolver, opts ...TrackerOption) *Tracker {
	base, cancel := context.WithCancel(context.Background())
	t := &Tracker{
		resolver:   resolver,
		debounce:   DefaultDebounce,
		base:       base,
		baseCancel: cancel,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Submit records a new value of the postal code field and returns its token.
// A malformed code settles immediately with a validation error and never
// reaches the resolver. Submit on a closed tracker returns 0.
func (t *Tracker) Submit(postalCode string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0
	}

	t.supersede()
	t.token++
	sub := &submission{token: t.token, done: make(chan struct{})}
	t.current = sub
	t.latest = nil

	if err := validation.ValidatePostalCode(postalCode); err != nil {
		t.latest = &Outcome{Token: sub.token, PostalCode: postalCode, Err: err}
		sub.finish()
		return sub.token
	}

	ctx, cancel := context.WithCancel(t.base)
	t.cancel = cancel
	t.wg.Add(1)
	go t.run(ctx, cancel, sub, validation.NormalizePostalCode(postalCode))
	return sub.token
}

// supersede must be called with t.mu held.
func (t *Tracker) supersede() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if t.current != nil {
		t.current.finish()
	}
}

func (t *Tracker) run(ctx context.Context, cancel context.CancelFunc, sub *submission, postalCode string) {
	defer t.wg.Done()
	defer cancel()

	if t.debounce > 0 {
		timer := time.NewTimer(t.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	res, err := t.resolver.Resolve(ctx, postalCode)
	if res != nil {
		res.Token = sub.token
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if sub.token != t.token || t.closed {
		return
	}
	t.latest = &Outcome{Token: sub.token, PostalCode: postalCode, Resolution: res, Err: err}
	t.cancel = nil
	sub.finish()
}

// Token returns the token of the most recent submission.
func (t *Tracker) Token() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.token
}

// Latest returns the settled outcome of the most recent submission, or nil
// while it is still pending.
func (t *Tracker) Latest() *Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil {
		return nil
	}
	out := *t.latest
	return &out
}

// ResolutionFor returns the current resolution when it was produced for
// postalCode (compared after normalization) and succeeded.
func (t *Tracker) ResolutionFor(postalCode string) (*models.Resolution, bool) {
	latest := t.Latest()
	if latest == nil || latest.Err != nil || latest.Resolution == nil {
		return nil, false
	}
	if latest.Resolution.PostalCode != validation.NormalizePostalCode(postalCode) {
		return nil, false
	}
	res := *latest.Resolution
	return &res, true
}

// Wait blocks until the most recent submission settles, following any newer
// submissions made while waiting.
func (t *Tracker) Wait(ctx context.Context) (*Outcome, error) {
	for {
		t.mu.Lock()
		sub := t.current
		closed := t.closed
		t.mu.Unlock()
		if sub == nil {
			return nil, dErrors.New(dErrors.CodeNotFound, "no postal code submitted")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-sub.done:
		}

		t.mu.Lock()
		if t.current == sub && t.latest != nil {
			out := *t.latest
			t.mu.Unlock()
			return &out, nil
		}
		t.mu.Unlock()
		if closed {
			return nil, dErrors.New(dErrors.CodeNotFound, "tracker closed")
		}
	}
}

// Close cancels pending work and waits for in-flight resolutions to return.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.supersede()
	t.mu.Unlock()

	t.baseCancel()
	t.wg.Wait()
}
