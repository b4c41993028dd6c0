package input

import (
	"errors"
	"image"
	"testing"
)

type recordingPointer struct {
	calls       []string
	failPress   bool
	failRelease bool
}

func (r *recordingPointer) Move(x, y int) error {
	r.calls = append(r.calls, "move")
	return nil
}

func (r *recordingPointer) Press(b Button) error {
	r.calls = append(r.calls, "press:"+b.String())
	if r.failPress {
		return errors.New("press failed")
	}
	return nil
}

func (r *recordingPointer) Release(b Button) error {
	r.calls = append(r.calls, "release:"+b.String())
	if r.failRelease {
		return errors.New("release failed")
	}
	return nil
}

func (r *recordingPointer) Position() (image.Point, error) { return image.Point{}, nil }

func TestClick(t *testing.T) {
	p := &recordingPointer{}
	if err := Click(p, ButtonLeft); err != nil {
		t.Fatal(err)
	}
	if len(p.calls) != 2 || p.calls[0] != "press:left" || p.calls[1] != "release:left" {
		t.Errorf("calls = %v", p.calls)
	}
}

func TestClickStopsOnPressError(t *testing.T) {
	p := &recordingPointer{failPress: true}
	if err := Click(p, ButtonRight); err == nil {
		t.Fatal("expected error")
	}
	if len(p.calls) != 1 {
		t.Errorf("release must not follow a failed press, calls = %v", p.calls)
	}
}

func TestParseBackend(t *testing.T) {
	tests := map[string]Backend{"": BackendX11, "X11": BackendX11, "arduino": BackendArduino}
	for in, want := range tests {
		got, err := ParseBackend(in)
		if err != nil || got != want {
			t.Errorf("ParseBackend(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseBackend("robot"); err == nil {
		t.Error("expected error")
	}
}
