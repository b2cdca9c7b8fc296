package collage_test

import (
	"context"
	"fmt"
	"time"

	"github.com/destel/collage"
	"github.com/destel/collage/internal/raster"
	"github.com/destel/collage/mockapi"
)

// This example selects photos from a picker, previews the collage and saves it.
// Portrait photos and duplicates are skipped; the picker is abandoned once six photos are selected.
func Example() {
	ctx := context.Background()

	agg := collage.NewAggregator(collage.WithFingerprinter(collage.ContentHash))
	defer agg.Close()

	library := &mockapi.Library{}
	session := collage.NewSession(ctx, agg, collage.SessionConfig{
		Rasterizer: raster.Grid{},
		Persister:  library,
		Throttle:   50 * time.Millisecond,
	})
	defer session.Close()

	photos := []collage.Candidate{
		mockapi.Photo(1, 300, 200),
		mockapi.Photo(2, 200, 300), // portrait
		mockapi.Photo(3, 300, 200),
		mockapi.Photo(1, 300, 200), // duplicate
		mockapi.Photo(4, 300, 200),
		mockapi.Photo(5, 300, 200),
		mockapi.Photo(6, 300, 200),
		mockapi.Photo(7, 300, 200),
		mockapi.Photo(8, 300, 200), // does not fit
	}

	taps := func(ctx context.Context) <-chan collage.Try[collage.Candidate] {
		return mockapi.Tap(ctx, photos, 10*time.Millisecond)
	}
	err := session.Add(ctx, taps)
	fmt.Println("Add error:", err)
	fmt.Println(session.ViewState().Title)

	_ = session.AwaitPreview(ctx)
	fmt.Println("Preview:", session.Preview().Bounds().Size())

	err = session.Save(ctx)
	fmt.Println("Save error:", err)
	fmt.Println("Saved collages:", library.Saved())
	fmt.Println(session.ViewState().Title)

	// Output:
	// Add error: <nil>
	// 6 photos
	// Preview: (1200,800)
	// Save error: <nil>
	// Saved collages: 1
	// Collage
}

// This example shows how to observe the selection directly.
func ExampleAggregator_Observe() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agg := collage.NewAggregator(collage.WithFingerprinter(collage.ContentHash))
	lists := agg.Observe(ctx)

	agg.Submit(mockapi.Photo(1, 30, 20))
	agg.Submit(mockapi.Photo(2, 20, 30))
	agg.Submit(mockapi.Photo(3, 30, 20))
	agg.Reset()
	agg.Close()

	for items := range lists {
		fmt.Println(collage.NewViewState(len(items)).Title)
	}

	// Output:
	// Collage
	// 1 photos
	// 2 photos
	// Collage
}

func ExampleThrottle() {
	in := make(chan int)
	go func() {
		defer close(in)
		for i := 1; i <= 10; i++ {
			in <- i
		}
	}()

	for x := range collage.Throttle(in, 100*time.Millisecond) {
		fmt.Println(x)
	}

	// Output:
	// 1
	// 10
}
