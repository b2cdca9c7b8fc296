// Package th provides basic test helpers.
package th

import (
	"errors"
	"testing"
	"time"
)

func ExpectValue[A comparable](t *testing.T, actual A, expected A) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected %v, got %v", expected, actual)
	}
}

func ExpectSlice[A comparable](t *testing.T, actual []A, expected []A) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("expected %v, got %v", expected, actual)
		return
	}

	for i := range expected {
		if expected[i] != actual[i] {
			t.Errorf("expected %v, got %v", expected, actual)
			return
		}
	}
}

func ExpectClosedChan[A any](t *testing.T, ch <-chan A, waitFor time.Duration) {
	t.Helper()
	select {
	case x, ok := <-ch:
		if ok {
			t.Errorf("expected channel to be closed, but got %v", x)
		}
	case <-time.After(waitFor):
		t.Errorf("channel was not closed after %v", waitFor)
	}
}

// ExpectReceive reads one value from ch, failing the test if nothing arrives within waitFor.
func ExpectReceive[A any](t *testing.T, ch <-chan A, waitFor time.Duration) A {
	t.Helper()
	select {
	case x, ok := <-ch:
		if !ok {
			t.Fatalf("expected a value, but channel was closed")
		}
		return x
	case <-time.After(waitFor):
		t.Fatalf("no value received after %v", waitFor)
	}

	var zero A
	return zero
}

// ExpectNoReceive fails the test if ch delivers a value within waitFor.
func ExpectNoReceive[A any](t *testing.T, ch <-chan A, waitFor time.Duration) {
	t.Helper()
	select {
	case x, ok := <-ch:
		if ok {
			t.Errorf("expected no value, got %v", x)
		}
	case <-time.After(waitFor):
	}
}

func ExpectError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Errorf("expected error '%s', got nil", message)
		return
	}

	if err.Error() != message {
		t.Errorf("expected error '%s', got '%s'", message, err.Error())
	}
}

func ExpectErrorIs(t *testing.T, err error, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("expected error '%v', got '%v'", target, err)
	}
}

func ExpectNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error '%v'", err)
	}
}

func ExpectNotHang(t *testing.T, waitFor time.Duration, f func()) {
	t.Helper()
	done := make(chan struct{})

	go func() {
		defer close(done)
		f()
	}()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Errorf("test hanged")
	}
}

func ExpectHang(t *testing.T, waitFor time.Duration, f func()) {
	t.Helper()
	done := make(chan struct{})

	go func() {
		defer close(done)
		f()
	}()

	select {
	case <-done:
		t.Errorf("expected to hang, but returned")
	case <-time.After(waitFor):
	}
}

// Eventually polls cond until it returns true or waitFor elapses.
func Eventually(t *testing.T, waitFor time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(waitFor)
	for !cond() {
		if time.Now().After(deadline) {
			t.Errorf("condition not met after %v", waitFor)
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}
