// Package ux renders the collage screen on a terminal.
package ux

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/destel/collage"
)

var (
	colorAccent = lipgloss.Color("#2CD7C7")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorError  = lipgloss.Color("#E74C3C")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	enabledStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	disabledStyle = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)

	infoBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)
	errorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)
)

// Terminal shows notifications, view states and previews as lines of text.
// When Interactive is set, a notification stays until the user presses Enter;
// otherwise it is dismissed as soon as it is printed.
type Terminal struct {
	Out         io.Writer
	In          io.Reader
	Interactive bool

	mu sync.Mutex

	readOnce sync.Once
	lines    chan struct{} // one value per line of input, closed at the end of input
}

var (
	_ collage.Notifier    = (*Terminal)(nil)
	_ collage.ViewSink    = (*Terminal)(nil)
	_ collage.PreviewSink = (*Terminal)(nil)
	_ collage.IconSink    = (*Terminal)(nil)
)

// NewTerminal creates a Terminal that is interactive when in is a terminal.
func NewTerminal(out io.Writer, in *os.File) *Terminal {
	return &Terminal{
		Out:         out,
		In:          in,
		Interactive: in != nil && (isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())),
	}
}

func (t *Terminal) println(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.Out, s)
}

// Notify prints a boxed message. An "Error" title is rendered as an error.
func (t *Terminal) Notify(ctx context.Context, title, description string) <-chan struct{} {
	box := infoBox
	if title == "Error" {
		box = errorBox
	}

	body := titleStyle.Render(title)
	if description != "" {
		body += "\n" + description
	}
	if t.Interactive {
		body += "\n" + mutedStyle.Render("press Enter to close")
	}
	t.println(box.Render(body))

	dismissed := make(chan struct{})
	if !t.Interactive || t.In == nil {
		close(dismissed)
		return dismissed
	}

	go func() {
		defer close(dismissed)
		t.readLine(ctx)
	}()
	return dismissed
}

// readLine waits for a line of input or for ctx to be canceled.
// Input is read by a single long-lived goroutine.
func (t *Terminal) readLine(ctx context.Context) {
	t.readOnce.Do(func() {
		t.lines = make(chan struct{})
		go t.readLines()
	})

	select {
	case <-t.lines:
	case <-ctx.Done():
	}
}

func (t *Terminal) readLines() {
	defer close(t.lines)

	r := bufio.NewReader(t.In)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if line != "" {
				t.lines <- struct{}{}
			}
			return
		}
		t.lines <- struct{}{}
	}
}

// UpdateView prints the title and which controls are enabled.
func (t *Terminal) UpdateView(state collage.ViewState) {
	t.println(FormatView(state))
}

// ShowPreview prints the size of the rendered collage.
func (t *Terminal) ShowPreview(img image.Image) {
	if img == nil {
		t.println(mutedStyle.Render("preview: empty"))
		return
	}
	b := img.Bounds()
	t.println(mutedStyle.Render(fmt.Sprintf("preview: %dx%d", b.Dx(), b.Dy())))
}

func (t *Terminal) ShowIcon(img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	t.println(mutedStyle.Render(fmt.Sprintf("icon: %dx%d", b.Dx(), b.Dy())))
}

// FormatView renders a view state as a single line.
func FormatView(state collage.ViewState) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(state.Title))
	for _, c := range []struct {
		name    string
		enabled bool
	}{
		{"add", state.AddEnabled},
		{"clear", state.ClearEnabled},
		{"save", state.SaveEnabled},
	} {
		sb.WriteString("  ")
		if c.enabled {
			sb.WriteString(enabledStyle.Render("[" + c.name + "]"))
		} else {
			sb.WriteString(disabledStyle.Render("[" + c.name + "]"))
		}
	}
	return sb.String()
}
