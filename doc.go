// Package collage implements the selection pipeline of a photo collage builder.
//
// A user picks photos one by one; every picked photo is a [Candidate]. Candidates flow into an [Aggregator],
// which admits at most [MaxItems] landscape photos with distinct content and publishes the resulting list
// as a hot stream. Everything the user sees is derived from that stream.
//
// # Streams
//
// Candidate sources are streams: channels of [Try] containers, where a Try holds either a value or an error.
// [Aggregator.Consume] reads a stream until the collage is full or the stream ends. When it stops early,
// it drains the rest of the stream in the background to prevent goroutine leaks, so the stream
// should not be used anymore after that.
//
// # Observing the selection
//
// The list of selected candidates is held by a [Variable]. Observers receive the current list immediately
// and then every change of it, in order. Observers are independent: a slow one does not delay others,
// and adding an observer does not run the admission pipeline again.
//
// A [Session] attaches two observers to the list:
//
//	lists := agg.Observe(ctx)
//	previews := collage.Throttle(lists, 500*time.Millisecond) // render the settled list only
//	views := agg.Observe(ctx)                                  // every change, to enable or disable controls
//
// The view state is a pure function of the number of selected photos, see [NewViewState].
//
// # Saving
//
// Saving is coordinated by a [Saver]. Only one save runs at a time. A failed save is reported to the user
// and leaves the selection untouched, so it can be retried. A successful save clears the selection.
package collage
