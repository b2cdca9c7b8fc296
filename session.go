package collage

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultThrottle = 500 * time.Millisecond
)

var (
	DefaultPreviewSize = image.Pt(1200, 800)
	DefaultIconSize    = image.Pt(22, 22)
)

// SessionConfig holds the collaborators of a [Session]. Only Rasterizer is required.
type SessionConfig struct {
	Rasterizer Rasterizer
	Persister  Persister
	Notifier   Notifier

	Preview PreviewSink
	View    ViewSink
	Icon    IconSink

	PreviewSize image.Point   // default DefaultPreviewSize
	IconSize    image.Point   // default DefaultIconSize
	Throttle    time.Duration // default DefaultThrottle

	Logger *slog.Logger
}

// Session is the collage screen: it keeps the preview and the controls in sync with an [Aggregator]
// and coordinates adding, clearing and saving.
//
// Two observers are attached to the aggregator's list:
//   - the preview path is throttled, since rendering a collage is expensive and selections come in bursts;
//     it renders the list and shows the result.
//   - the view path is immediate and sees every version of the list, since it enables and disables controls.
//
// Both share the aggregator's single admission pipeline.
type Session struct {
	agg    *Aggregator
	cfg    SessionConfig
	saver  *Saver
	logger *slog.Logger

	mu       sync.Mutex
	preview  image.Image
	rendered []Candidate // the list the preview was rendered from

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession attaches a session to agg. The session stops updating its sinks when ctx is canceled
// or [Session.Close] is called.
func NewSession(ctx context.Context, agg *Aggregator, cfg SessionConfig) *Session {
	if cfg.PreviewSize == (image.Point{}) {
		cfg.PreviewSize = DefaultPreviewSize
	}
	if cfg.IconSize == (image.Point{}) {
		cfg.IconSize = DefaultIconSize
	}
	if cfg.Throttle <= 0 {
		cfg.Throttle = DefaultThrottle
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		agg:    agg,
		cfg:    cfg,
		logger: cfg.Logger,
		cancel: cancel,
	}
	s.saver = NewSaver(cfg.Persister, cfg.Notifier, agg.Reset)

	s.wg.Add(2)
	go s.renderPreviews(ctx)
	go s.updateViews(ctx)

	return s
}

func (s *Session) renderPreviews(ctx context.Context) {
	defer s.wg.Done()

	lists := Throttle(s.agg.Observe(ctx), s.cfg.Throttle)
	for items := range lists {
		if ctx.Err() != nil {
			continue // sinks are gone, let the throttle finish
		}

		var img image.Image
		if len(items) > 0 {
			img = s.cfg.Rasterizer.Compose(items, s.cfg.PreviewSize)
		}

		s.mu.Lock()
		s.preview = img
		s.rendered = items
		s.mu.Unlock()

		s.logger.Debug("preview rendered", "photos", len(items))
		if s.cfg.Preview != nil {
			s.cfg.Preview.ShowPreview(img)
		}
	}
}

func (s *Session) updateViews(ctx context.Context) {
	defer s.wg.Done()

	for items := range s.agg.Observe(ctx) {
		if ctx.Err() != nil {
			continue
		}
		if s.cfg.View != nil {
			s.cfg.View.UpdateView(NewViewState(len(items)))
		}
	}
}

// Aggregator returns the aggregator the session is attached to.
func (s *Session) Aggregator() *Aggregator {
	return s.agg
}

// ViewState returns the view state for the current selection.
func (s *Session) ViewState() ViewState {
	return NewViewState(s.agg.Len())
}

// Preview returns the latest rendered collage, or nil if nothing has been rendered.
func (s *Session) Preview() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// AwaitPreview blocks until the preview has been rendered from the current selection.
func (s *Session) AwaitPreview(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		s.mu.Lock()
		settled := sameList(s.rendered, s.agg.Items())
		s.mu.Unlock()
		if settled {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// sameList reports whether a and b are the same published version of the list.
// Every version has its own backing array, so comparing the first element's address is enough.
func sameList(a, b []Candidate) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// SaveState returns the state of the save coordination.
func (s *Session) SaveState() SaveState {
	return s.saver.State()
}

// Add selects candidates from src until the collage is full or src is done.
// src is stopped as soon as the collage is full. When selection is over, the icon sink
// receives a thumbnail of the current preview.
func (s *Session) Add(ctx context.Context, src Source) error {
	err := s.agg.Consume(ctx, src)
	if err != nil {
		s.logger.Warn("photo selection interrupted", "photos", s.agg.Len(), "error", err)
	} else {
		s.logger.Info("completed photo selection", "photos", s.agg.Len())
	}

	if s.cfg.Icon != nil {
		var icon image.Image
		if preview := s.Preview(); preview != nil {
			icon = s.cfg.Rasterizer.Thumbnail(preview, s.cfg.IconSize)
		}
		s.cfg.Icon.ShowIcon(icon)
	}

	return err
}

// Clear empties the selection.
func (s *Session) Clear() {
	s.agg.Reset()
}

// Save persists the latest rendered collage and clears the selection on success.
// It returns [ErrSaveDisabled] when the current selection cannot be saved,
// and does nothing when no collage has been rendered yet.
func (s *Session) Save(ctx context.Context) error {
	if !s.ViewState().SaveEnabled {
		return ErrSaveDisabled
	}
	if s.cfg.Persister == nil {
		return &PersistenceError{Reason: "no photo library configured"}
	}

	err := s.saver.Save(ctx, s.Preview())
	if err != nil {
		s.logger.Warn("collage not saved", "error", err)
	}
	return err
}

// Close detaches the session from the aggregator and waits until no sink is called anymore.
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
}
