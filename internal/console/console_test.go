package console

import (
	"errors"
	"io"
	"strings"
	"testing"

	"shotbot/internal/logger"
	"shotbot/internal/shot"
)

type fakeShooter struct {
	shots []shot.ShotType
	err   error
}

func (f *fakeShooter) TakeShot(t shot.ShotType) (shot.Result, error) {
	f.shots = append(f.shots, t)
	return shot.Result{Type: t}, f.err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
		ok   bool
	}{
		{"c", CmdCenter, true},
		{" l\n", CmdLob, true},
		{"M", CmdManual, true},
		{"a", CmdAimed, true},
		{"q", CmdQuit, true},
		{"", 0, false},
		{"cc", 0, false},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCommand(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseCommand(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRunExecutesUntilQuit(t *testing.T) {
	f := &fakeShooter{}
	var out strings.Builder
	c := NewConsole(strings.NewReader("c\nl\nm\na\nq\nc\n"), &out, f, logger.Discard())

	if err := c.Run(nil); err != nil {
		t.Fatal(err)
	}
	want := []shot.ShotType{shot.Center, shot.Lob, shot.Manual, shot.Aimed}
	if len(f.shots) != len(want) {
		t.Fatalf("shots = %v, want %v", f.shots, want)
	}
	for i := range want {
		if f.shots[i] != want[i] {
			t.Errorf("shot %d = %v, want %v", i, f.shots[i], want[i])
		}
	}
	if !strings.HasPrefix(out.String(), Usage+"\n"+Prompt) {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunInvalidInput(t *testing.T) {
	f := &fakeShooter{}
	var out strings.Builder
	c := NewConsole(strings.NewReader("shoot\n"), &out, f, logger.Discard())

	if err := c.Run(nil); err != nil {
		t.Fatal(err)
	}
	if len(f.shots) != 0 {
		t.Errorf("shots = %v", f.shots)
	}
	if !strings.Contains(out.String(), `Invalid input: "shoot". `+Usage) {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunContinuesAfterShotError(t *testing.T) {
	f := &fakeShooter{err: errors.New("capture failed")}
	c := NewConsole(strings.NewReader("c\nc\n"), &strings.Builder{}, f, logger.Discard())
	if err := c.Run(nil); err != nil {
		t.Fatal(err)
	}
	if len(f.shots) != 2 {
		t.Errorf("shots = %d, want 2", len(f.shots))
	}
}

func TestRunHotkeys(t *testing.T) {
	f := &fakeShooter{}
	hotkeys := make(chan Command, 2)
	hotkeys <- CmdLob
	hotkeys <- CmdQuit
	// ввод не заканчивается, выход только по горячей клавише
	r, w := io.Pipe()
	defer w.Close()

	c := NewConsole(r, &strings.Builder{}, f, logger.Discard())
	if err := c.Run(hotkeys); err != nil {
		t.Fatal(err)
	}
	if len(f.shots) != 1 || f.shots[0] != shot.Lob {
		t.Errorf("shots = %v", f.shots)
	}
}

func TestCommandString(t *testing.T) {
	if CmdQuit.String() != "quit" || CmdAimed.String() != "aimed" {
		t.Errorf("String() = %q, %q", CmdQuit, CmdAimed)
	}
}
