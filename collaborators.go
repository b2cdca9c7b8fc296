package collage

import (
	"context"
	"image"
)

// Source starts producing candidates, typically from a photo picker.
// It must close the returned channel soon after ctx is canceled.
type Source func(ctx context.Context) <-chan Try[Candidate]

// Rasterizer renders collages. Implementations must be safe for concurrent use.
type Rasterizer interface {
	// Compose lays out the candidates, in order, on a canvas of the given size.
	Compose(items []Candidate, size image.Point) image.Image
	// Thumbnail scales img down to fit the given size.
	Thumbnail(img image.Image, size image.Point) image.Image
}

// Persister stores a rendered collage, typically in a photo library.
// A failure should be reported as a [*PersistenceError] with a human readable reason;
// other errors are wrapped into one.
type Persister interface {
	Save(ctx context.Context, img image.Image) error
}

// Notifier shows a single-button message to the user.
// The returned channel is closed when the user dismisses the message.
type Notifier interface {
	Notify(ctx context.Context, title, description string) <-chan struct{}
}

// PreviewSink displays the latest rendered collage. A nil image means there is nothing to show.
type PreviewSink interface {
	ShowPreview(img image.Image)
}

// ViewSink applies a view state to the screen controls.
type ViewSink interface {
	UpdateView(state ViewState)
}

// IconSink displays a small icon of the collage.
type IconSink interface {
	ShowIcon(img image.Image)
}

// PersisterFunc is an adapter to allow the use of ordinary functions as a [Persister].
type PersisterFunc func(ctx context.Context, img image.Image) error

func (f PersisterFunc) Save(ctx context.Context, img image.Image) error {
	return f(ctx, img)
}

// NotifierFunc is an adapter to allow the use of ordinary functions as a [Notifier].
type NotifierFunc func(ctx context.Context, title, description string) <-chan struct{}

func (f NotifierFunc) Notify(ctx context.Context, title, description string) <-chan struct{} {
	return f(ctx, title, description)
}

// PreviewFunc is an adapter to allow the use of ordinary functions as a [PreviewSink].
type PreviewFunc func(img image.Image)

func (f PreviewFunc) ShowPreview(img image.Image) {
	f(img)
}

// ViewFunc is an adapter to allow the use of ordinary functions as a [ViewSink].
type ViewFunc func(state ViewState)

func (f ViewFunc) UpdateView(state ViewState) {
	f(state)
}

// IconFunc is an adapter to allow the use of ordinary functions as an [IconSink].
type IconFunc func(img image.Image)

func (f IconFunc) ShowIcon(img image.Image) {
	f(img)
}
