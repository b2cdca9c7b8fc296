package ux

import (
	"bytes"
	"context"
	"image"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/destel/collage"
	"github.com/destel/collage/internal/th"
)

func TestNotifyNonInteractive(t *testing.T) {
	var out bytes.Buffer
	term := &Terminal{Out: &out}

	dismissed := term.Notify(context.Background(), "Error", "disk is full")
	th.ExpectClosedChan(t, dismissed, 1*time.Second)

	text := out.String()
	th.ExpectValue(t, strings.Contains(text, "Error"), true)
	th.ExpectValue(t, strings.Contains(text, "disk is full"), true)
	th.ExpectValue(t, strings.Contains(text, "press Enter"), false)
}

func TestNotifyInteractive(t *testing.T) {
	t.Run("dismissed by enter", func(t *testing.T) {
		r, w := io.Pipe()
		defer w.Close()

		var out bytes.Buffer
		term := &Terminal{Out: &out, In: r, Interactive: true}

		dismissed := term.Notify(context.Background(), "Saved", "")
		th.ExpectNoReceive(t, dismissed, 100*time.Millisecond)

		go func() { _, _ = w.Write([]byte("\n")) }()
		th.ExpectClosedChan(t, dismissed, 1*time.Second)
	})

	t.Run("dismissed by context", func(t *testing.T) {
		r, w := io.Pipe()
		defer w.Close()

		ctx, cancel := context.WithCancel(context.Background())
		term := &Terminal{Out: io.Discard, In: r, Interactive: true}

		dismissed := term.Notify(ctx, "Saved", "")
		cancel()
		th.ExpectClosedChan(t, dismissed, 1*time.Second)
	})

	t.Run("next notification after canceled one", func(t *testing.T) {
		r, w := io.Pipe()
		defer w.Close()

		term := &Terminal{Out: io.Discard, In: r, Interactive: true}

		ctx, cancel := context.WithCancel(context.Background())
		first := term.Notify(ctx, "Saved", "")
		cancel()
		th.ExpectClosedChan(t, first, 1*time.Second)

		second := term.Notify(context.Background(), "Error", "disk is full")
		th.ExpectNoReceive(t, second, 100*time.Millisecond)

		go func() { _, _ = w.Write([]byte("\n")) }()
		th.ExpectClosedChan(t, second, 1*time.Second)

		third := term.Notify(context.Background(), "Saved", "")
		th.ExpectNoReceive(t, third, 100*time.Millisecond)

		go func() { _, _ = w.Write([]byte("\n")) }()
		th.ExpectClosedChan(t, third, 1*time.Second)
	})
}

func TestFormatView(t *testing.T) {
	line := FormatView(collage.NewViewState(3))
	th.ExpectValue(t, strings.Contains(line, "3 photos"), true)
	th.ExpectValue(t, strings.Contains(line, "[add]"), true)
	th.ExpectValue(t, strings.Contains(line, "[save]"), true)

	th.ExpectValue(t, strings.Contains(FormatView(collage.NewViewState(0)), "Collage"), true)
}

func TestShowPreview(t *testing.T) {
	var out bytes.Buffer
	term := &Terminal{Out: &out}

	term.ShowPreview(nil)
	term.ShowPreview(image.NewRGBA(image.Rect(0, 0, 120, 80)))
	term.ShowIcon(image.NewRGBA(image.Rect(0, 0, 22, 15)))

	text := out.String()
	th.ExpectValue(t, strings.Contains(text, "preview: empty"), true)
	th.ExpectValue(t, strings.Contains(text, "preview: 120x80"), true)
	th.ExpectValue(t, strings.Contains(text, "icon: 22x15"), true)
}
