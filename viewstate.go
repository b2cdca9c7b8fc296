package collage

import "strconv"

// ViewState is what the collage screen shows for a given number of selected photos.
type ViewState struct {
	Count        int
	SaveEnabled  bool
	ClearEnabled bool
	AddEnabled   bool
	Title        string
}

// NewViewState derives the view state for a list of n photos.
// Saving is only possible for a non-empty even number of photos, since the collage layout needs pairs.
func NewViewState(n int) ViewState {
	title := "Collage"
	if n > 0 {
		title = strconv.Itoa(n) + " photos"
	}

	return ViewState{
		Count:        n,
		SaveEnabled:  n > 0 && n%2 == 0,
		ClearEnabled: n > 0,
		AddEnabled:   n < MaxItems,
		Title:        title,
	}
}
