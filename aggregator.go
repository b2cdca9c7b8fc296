package collage

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Verdict is the outcome of running a candidate through the admission gates.
type Verdict int

const (
	Admitted Verdict = iota
	RejectedFull
	RejectedPortrait
	RejectedDuplicate
)

func (v Verdict) String() string {
	switch v {
	case Admitted:
		return "admitted"
	case RejectedFull:
		return "rejected: collage is full"
	case RejectedPortrait:
		return "rejected: not landscape"
	case RejectedDuplicate:
		return "rejected: duplicate"
	default:
		return "unknown"
	}
}

// Aggregator owns the ordered list of selected candidates.
//
// Candidates enter through [Aggregator.Submit] or [Aggregator.Consume] and must pass three gates, in order:
//   - capacity: the list holds fewer than [MaxItems] candidates
//   - orientation: the candidate is landscape
//   - duplicate: no candidate with the same fingerprint was seen since the last reset
//
// The duplicate gate records the fingerprint as soon as it is evaluated.
//
// The list is published through a [Variable], so any number of observers share
// a single admission pipeline. Aggregator is safe for concurrent use;
// submissions are serialized and observers see mutations in the order they happened.
type Aggregator struct {
	mu          sync.Mutex
	items       *Variable[[]Candidate]
	seen        map[Fingerprint]struct{}
	fingerprint Fingerprinter
	logger      *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFingerprinter sets the function used by the duplicate gate. Default is [EncodedLength].
func WithFingerprinter(f Fingerprinter) Option {
	return func(a *Aggregator) {
		if f != nil {
			a.fingerprint = f
		}
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAggregator creates an empty aggregator.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		items:       NewVariable[[]Candidate](nil),
		seen:        make(map[Fingerprint]struct{}),
		fingerprint: EncodedLength,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Observe returns a channel that receives the current list and every subsequent version of it.
// Received slices must not be modified.
func (a *Aggregator) Observe(ctx context.Context) <-chan []Candidate {
	return a.items.Observe(ctx)
}

// Items returns the current list. The returned slice must not be modified.
func (a *Aggregator) Items() []Candidate {
	return a.items.Value()
}

// Len returns the number of selected candidates.
func (a *Aggregator) Len() int {
	return len(a.items.Value())
}

// Submit runs c through the admission gates and appends it to the list if all of them pass.
func (a *Aggregator) Submit(c Candidate) Verdict {
	a.mu.Lock()
	defer a.mu.Unlock()

	v := a.admit(c)
	if v == Admitted {
		a.items.Update(func(items []Candidate) []Candidate {
			// clip so that every published version has its own backing array
			return append(slices.Clip(items), c)
		})
	}

	a.logger.Debug("candidate evaluated", "name", c.Name, "width", c.Width(), "height", c.Height(), "verdict", v.String())
	return v
}

// admit evaluates the gates. Must be called with mu held.
func (a *Aggregator) admit(c Candidate) Verdict {
	if len(a.items.Value()) >= MaxItems {
		return RejectedFull
	}

	if !c.Landscape() {
		return RejectedPortrait
	}

	fp := a.fingerprint(c)
	if _, ok := a.seen[fp]; ok {
		return RejectedDuplicate
	}
	a.seen[fp] = struct{}{}

	return Admitted
}

// Consume starts src and submits its candidates until the list is full or the stream ends.
// Once the list is full, Consume cancels the context passed to src, so the source stops producing,
// and drains whatever is still in flight in the background.
// If the stream contains an error, Consume stops the source the same way and returns the error;
// candidates admitted before stay in the list. Rejections are not errors.
func (a *Aggregator) Consume(ctx context.Context, src Source) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := src(ctx)
	stop := func() {
		cancel()
		DrainNB(in)
	}
	defer a.logger.Debug("stopped consuming candidates")

	for {
		if a.Len() >= MaxItems {
			stop()
			return nil
		}

		item, ok := <-in
		if !ok {
			return nil
		}
		if item.Error != nil {
			stop()
			return item.Error
		}

		a.Submit(item.V)
	}
}

// Reset empties the list and forgets all fingerprints. Observers receive a single empty list.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	clear(a.seen)
	a.items.Set(nil)
}

// Close completes all observers. The aggregator must not be used after Close.
func (a *Aggregator) Close() {
	a.items.Close()
}
