package shot

import (
	"errors"
	"fmt"
	"image"
	"reflect"
	"testing"
	"time"

	"shotbot/internal/capture"
	"shotbot/internal/database"
	"shotbot/internal/frame"
	"shotbot/internal/input"
	"shotbot/internal/locator"
	"shotbot/internal/logger"
	"shotbot/internal/planner"
	"shotbot/internal/tracker"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

type fakePointer struct {
	pos       image.Point
	events    []string
	failPress bool
}

func (p *fakePointer) Move(x, y int) error {
	p.pos = image.Pt(x, y)
	p.events = append(p.events, fmt.Sprintf("move %d,%d", x, y))
	return nil
}

func (p *fakePointer) Press(b input.Button) error {
	p.events = append(p.events, "press")
	if p.failPress {
		return errors.New("button stuck")
	}
	return nil
}

func (p *fakePointer) Release(b input.Button) error {
	p.events = append(p.events, "release")
	return nil
}

func (p *fakePointer) Position() (image.Point, error) { return p.pos, nil }

// fakeSource отдает кадр окна игры для прямоугольника окна и кадры
// с заданным числом красных пикселей для остальных
type fakeSource struct {
	gameRect  image.Rectangle
	game      *frame.Frame
	counts    []int
	calls     int
	rects     []image.Rectangle
	failTrack bool
}

func (s *fakeSource) Capture(rect image.Rectangle) (*frame.Frame, error) {
	if s.game != nil && rect == s.gameRect {
		return s.game, nil
	}
	s.rects = append(s.rects, rect)
	if s.failTrack {
		return nil, fmt.Errorf("%w: connection reset", capture.ErrCapture)
	}
	n := 0
	if len(s.counts) > 0 {
		n = s.counts[len(s.counts)-1]
		if s.calls < len(s.counts) {
			n = s.counts[s.calls]
		}
	}
	s.calls++
	w, h := rect.Dx(), rect.Dy()
	pix := make([]byte, w*h*frame.BytesPerPixel)
	for p := 0; p < n; p++ {
		pix[p*4+2] = 255
	}
	return &frame.Frame{Pix: pix, Width: w, Height: h, Origin: rect.Min}, nil
}

type fakeJournal struct {
	records []database.ShotRecord
}

func (j *fakeJournal) SaveShotResultAsync(rec database.ShotRecord) {
	j.records = append(j.records, rec)
}

func testGeometry() planner.Geometry {
	return planner.Geometry{
		Origin:       image.Pt(100, 200),
		Width:        40,
		Height:       160,
		TargetRadius: 20,
		Goal:         image.Pt(20, 0),
	}
}

func newTestShooter(p *fakePointer, src *fakeSource, opts ...Option) (*Shooter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	settings := Settings{
		Geometry:   testGeometry(),
		Tracking:   tracker.DefaultConfig(),
		AimLength:  50,
		FocusDelay: 50 * time.Millisecond,
	}
	src.gameRect = settings.Geometry.Bounds()
	opts = append([]Option{WithClock(clock)}, opts...)
	return NewShooter(p, src, settings, logger.Discard(), opts...), clock
}

func TestTakeShotSequence(t *testing.T) {
	tests := []struct {
		shot  ShotType
		point image.Point
	}{
		{Center, image.Pt(120, 310)},
		{Lob, image.Pt(120, 339)},
		{Manual, image.Pt(500, 500)},
	}
	for _, tt := range tests {
		t.Run(tt.shot.String(), func(t *testing.T) {
			p := &fakePointer{pos: image.Pt(500, 500)}
			src := &fakeSource{counts: []int{0, 0, 120, 120, 800}}
			s, clock := newTestShooter(p, src)

			res, err := s.TakeShot(tt.shot)
			if err != nil {
				t.Fatal(err)
			}
			want := []string{
				"move 120,195", "press", "release",
				fmt.Sprintf("move %d,%d", tt.point.X, tt.point.Y), "press", "release",
				"move 500,500",
			}
			if !reflect.DeepEqual(p.events, want) {
				t.Errorf("events = %v, want %v", p.events, want)
			}
			if res.Target != tt.point {
				t.Errorf("Target = %v, want %v", res.Target, tt.point)
			}
			if res.Outcome != (tracker.Outcome{Kind: tracker.KindTriggered, Sample: 4, Count: 800}) {
				t.Errorf("Outcome = %+v", res.Outcome)
			}
			if res.Baseline != 120 {
				t.Errorf("Baseline = %d, want 120", res.Baseline)
			}
			wantRect := tracker.Region(tt.point, 20)
			for _, r := range src.rects {
				if r != wantRect {
					t.Fatalf("tracked %v, want %v", r, wantRect)
				}
			}
			if len(clock.sleeps) < 2 || clock.sleeps[0] != 50*time.Millisecond || clock.sleeps[1] != 160*time.Millisecond {
				t.Errorf("sleeps = %v, want focus delay then settle delay", clock.sleeps)
			}
			if res.Duration <= 0 {
				t.Errorf("Duration = %v", res.Duration)
			}
		})
	}
}

func TestTakeShotTimedOut(t *testing.T) {
	p := &fakePointer{pos: image.Pt(10, 10)}
	src := &fakeSource{counts: []int{50}}
	s, _ := newTestShooter(p, src)

	res, err := s.TakeShot(Center)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome.Kind != tracker.KindTimedOut || res.Outcome.Sample != 60 {
		t.Errorf("Outcome = %+v, want timed out after 60", res.Outcome)
	}
	if src.calls != 60 {
		t.Errorf("captures = %d, want 60", src.calls)
	}
	if last := p.events[len(p.events)-1]; last != "move 10,10" {
		t.Errorf("pointer not restored, last event %q", last)
	}
}

// ballFrame кадр окна игры: черный фон и мяч, уложенный подряд с пикселя (8, 100)
func ballFrame(g planner.Geometry) *frame.Frame {
	pix := make([]byte, g.Width*g.Height*frame.BytesPerPixel)
	off := (100*g.Width + 8) * frame.BytesPerPixel
	copy(pix[off:], locator.DefaultTemplate.Pix)
	return &frame.Frame{Pix: pix, Width: g.Width, Height: g.Height, Origin: g.Origin}
}

func TestTakeShotAimed(t *testing.T) {
	p := &fakePointer{pos: image.Pt(500, 500)}
	src := &fakeSource{counts: []int{0, 200, 900}, game: ballFrame(testGeometry())}
	s, _ := newTestShooter(p, src)

	res, err := s.TakeShot(Aimed)
	if err != nil {
		t.Fatal(err)
	}
	// мяч в (120,300), ворота в (120,200), длина 50
	if res.Target != image.Pt(120, 250) {
		t.Errorf("Target = %v, want (120,250)", res.Target)
	}
	if res.Outcome.Kind != tracker.KindTriggered {
		t.Errorf("Outcome = %+v", res.Outcome)
	}
}

func TestTakeShotAimedDegenerate(t *testing.T) {
	p := &fakePointer{pos: image.Pt(500, 500)}
	src := &fakeSource{counts: []int{0, 200, 900}, game: ballFrame(testGeometry())}
	s, _ := newTestShooter(p, src)
	s.settings.Geometry.Goal = image.Pt(20, 100)

	res, err := s.TakeShot(Aimed)
	if err != nil {
		t.Fatalf("degenerate aim must not fail the shot: %v", err)
	}
	if res.Target != image.Pt(120, 300) {
		t.Errorf("Target = %v, want ball position (120,300)", res.Target)
	}
}

func TestTakeShotCaptureFailureReleasesAndRestores(t *testing.T) {
	p := &fakePointer{pos: image.Pt(7, 8)}
	src := &fakeSource{failTrack: true}
	j := &fakeJournal{}
	s, _ := newTestShooter(p, src, WithJournal(j, true))

	_, err := s.TakeShot(Center)
	if !errors.Is(err, capture.ErrCapture) {
		t.Fatalf("err = %v, want ErrCapture", err)
	}
	n := len(p.events)
	if n < 2 || p.events[n-2] != "release" || p.events[n-1] != "move 7,8" {
		t.Errorf("events = %v, want release then restore", p.events)
	}
	if len(src.rects) != 1 {
		t.Errorf("capture retried: %d attempts", len(src.rects))
	}
	if len(j.records) != 1 || j.records[0].Outcome != "error" || j.records[0].ErrorText == "" {
		t.Errorf("journal = %+v", j.records)
	}
}

func TestTakeShotPressFailure(t *testing.T) {
	p := &fakePointer{pos: image.Pt(1, 2)}
	src := &fakeSource{counts: []int{0}}
	s, _ := newTestShooter(p, src)
	// первый Press внутри клика фокуса
	p.failPress = true

	if _, err := s.TakeShot(Center); err == nil {
		t.Fatal("expected error")
	}
	if last := p.events[len(p.events)-1]; last != "move 1,2" {
		t.Errorf("pointer not restored, events = %v", p.events)
	}
	if src.calls != 0 {
		t.Errorf("tracking must not start, captures = %d", src.calls)
	}
}

func TestTakeShotJournal(t *testing.T) {
	p := &fakePointer{pos: image.Pt(500, 500)}
	src := &fakeSource{counts: []int{0, 0, 120, 120, 800}}
	j := &fakeJournal{}
	s, _ := newTestShooter(p, src, WithJournal(j, true))

	if _, err := s.TakeShot(Lob); err != nil {
		t.Fatal(err)
	}
	if len(j.records) != 1 {
		t.Fatalf("records = %d, want 1", len(j.records))
	}
	rec := j.records[0]
	if err := rec.Validate(); err != nil {
		t.Error(err)
	}
	if rec.ShotType != "lob" || rec.Outcome != "triggered" || rec.Sample != 4 || rec.Count != 800 || rec.Baseline != 120 {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.ImageData) == 0 {
		t.Error("target image missing")
	}
}

func TestParseShotType(t *testing.T) {
	for _, st := range []ShotType{Center, Lob, Manual, Aimed} {
		got, err := ParseShotType(st.String())
		if err != nil || got != st {
			t.Errorf("ParseShotType(%q) = %v, %v", st.String(), got, err)
		}
	}
	if _, err := ParseShotType("volley"); err == nil {
		t.Error("expected error for unknown type")
	}
}
