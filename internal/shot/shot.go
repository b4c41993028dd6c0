package shot

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"shotbot/internal/capture"
	"shotbot/internal/database"
	"shotbot/internal/input"
	"shotbot/internal/locator"
	"shotbot/internal/logger"
	"shotbot/internal/planner"
	"shotbot/internal/screenshot"
	"shotbot/internal/tracker"
)

// ShotType вид удара
type ShotType int

const (
	Center ShotType = iota
	Lob
	Manual
	Aimed
)

func (t ShotType) String() string {
	switch t {
	case Center:
		return "center"
	case Lob:
		return "lob"
	case Manual:
		return "manual"
	case Aimed:
		return "aimed"
	}
	return fmt.Sprintf("ShotType(%d)", int(t))
}

// ParseShotType по имени из конфигурации или журнала
func ParseShotType(name string) (ShotType, error) {
	switch strings.ToLower(name) {
	case "center":
		return Center, nil
	case "lob":
		return Lob, nil
	case "manual":
		return Manual, nil
	case "aimed":
		return Aimed, nil
	}
	return 0, fmt.Errorf("unknown shot type %q", name)
}

// Journal приемник записей об ударах; *database.DatabaseManager
type Journal interface {
	SaveShotResultAsync(rec database.ShotRecord)
}

// Settings параметры удара
type Settings struct {
	Geometry   planner.Geometry
	Tracking   tracker.Config
	Template   locator.Template
	Stride     int
	AimLength  float64
	FocusDelay time.Duration
}

// Result итог одного удара
type Result struct {
	Type     ShotType
	Outcome  tracker.Outcome
	Baseline int
	Target   image.Point // точка, вокруг которой отслеживалось попадание
	Duration time.Duration
}

// Option настройка Shooter
type Option func(*Shooter)

// WithClock подменяет часы для паузы фокуса и трекера
func WithClock(c tracker.Clock) Option {
	return func(s *Shooter) { s.clock = c }
}

// WithJournal включает запись ударов; withImage добавляет PNG области цели
func WithJournal(j Journal, withImage bool) Option {
	return func(s *Shooter) {
		s.journal = j
		s.journalImage = withImage
	}
}

// WithSnapshots сохраняет кадры мяча и цели на диск
func WithSnapshots(m *screenshot.ScreenshotManager) Option {
	return func(s *Shooter) { s.snapshots = m }
}

// Shooter выполняет удары: фокус окна, наведение, нажатие, ожидание попадания, отпускание
type Shooter struct {
	pointer      input.Pointer
	source       capture.Source
	tracker      *tracker.Tracker
	settings     Settings
	clock        tracker.Clock
	logger       *logger.LoggerManager
	journal      Journal
	journalImage bool
	snapshots    *screenshot.ScreenshotManager

	baseline int // базовый уровень текущего удара, пишет observe
}

// NewShooter создает исполнителя ударов
func NewShooter(pointer input.Pointer, source capture.Source, settings Settings, loggerManager *logger.LoggerManager, opts ...Option) *Shooter {
	s := &Shooter{
		pointer:  pointer,
		source:   source,
		settings: settings,
		clock:    tracker.SystemClock{},
		logger:   loggerManager,
	}
	if s.settings.Stride <= 0 {
		s.settings.Stride = 1
	}
	if s.settings.AimLength <= 0 {
		s.settings.AimLength = planner.DefaultAimLength
	}
	if s.settings.Template.Len() == 0 {
		s.settings.Template = locator.DefaultTemplate
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tracker = tracker.New(source, settings.Tracking, tracker.WithClock(s.clock), tracker.WithObserver(s.observe))
	return s
}

func (s *Shooter) observe(o tracker.Outcome) {
	switch o.Kind {
	case tracker.KindBaseline:
		s.baseline = o.Count
		s.logger.Info("baseline = %d", o.Count)
	case tracker.KindRising:
		s.logger.Debug("target %d: num red = %d", o.Sample, o.Count)
	}
}

// TakeShot выполняет один удар. Нажатая кнопка отпускается, а указатель
// возвращается на исходную позицию и при ошибке.
func (s *Shooter) TakeShot(t ShotType) (res Result, err error) {
	res = Result{Type: t}
	s.baseline = 0
	start := s.clock.Now()

	origin, err := s.pointer.Position()
	if err != nil {
		return res, fmt.Errorf("failed to read pointer position: %w", err)
	}
	s.logger.Debug("🖱️ Исходная позиция указателя: %v", origin)

	defer func() {
		if rerr := input.MoveTo(s.pointer, origin); rerr != nil {
			rerr = fmt.Errorf("failed to restore pointer: %w", rerr)
			if err == nil {
				err = rerr
			} else {
				s.logger.LogError(rerr, "Восстановление указателя")
			}
		}
		res.Baseline = s.baseline
		res.Duration = s.clock.Now().Sub(start)
		s.record(res, err)
	}()

	if err := s.focus(); err != nil {
		return res, err
	}

	shotPoint, err := s.shotPoint(t, origin)
	if err != nil {
		return res, err
	}
	if err := input.MoveTo(s.pointer, shotPoint); err != nil {
		return res, fmt.Errorf("failed to move to shot point %v: %w", shotPoint, err)
	}
	if err := s.pointer.Press(input.ButtonLeft); err != nil {
		// кнопка могла успеть нажаться
		s.release()
		return res, fmt.Errorf("failed to press %s: %w", input.ButtonLeft, err)
	}

	outcome, trackErr := s.track(&res)
	if err := s.release(); err != nil && trackErr == nil {
		return res, err
	}
	if trackErr != nil {
		return res, trackErr
	}
	res.Outcome = outcome

	switch outcome.Kind {
	case tracker.KindTriggered:
		s.logger.Info("🎯 %s: попадание на кадре %d, num red = %d", t, outcome.Sample, outcome.Count)
	default:
		s.logger.Info("⌛ %s: %s", t, outcome)
	}
	return res, nil
}

// focus кликает над окном игры, чтобы вернуть ему фокус
func (s *Shooter) focus() error {
	p := s.settings.Geometry.FocusPoint()
	if err := input.MoveTo(s.pointer, p); err != nil {
		return fmt.Errorf("failed to move to focus point %v: %w", p, err)
	}
	if err := input.Click(s.pointer, input.ButtonLeft); err != nil {
		return fmt.Errorf("failed to click focus point %v: %w", p, err)
	}
	s.clock.Sleep(s.settings.FocusDelay)
	return nil
}

func (s *Shooter) shotPoint(t ShotType, origin image.Point) (image.Point, error) {
	g := s.settings.Geometry
	switch t {
	case Center:
		return g.CenterShot(), nil
	case Lob:
		return g.LobShot(), nil
	case Manual:
		return origin, nil
	case Aimed:
		return s.aimPoint()
	}
	return image.Point{}, fmt.Errorf("unknown shot type %v", t)
}

// aimPoint находит мяч в окне игры и уводит точку удара от него в сторону ворот
func (s *Shooter) aimPoint() (image.Point, error) {
	g := s.settings.Geometry
	f, err := s.source.Capture(g.Bounds())
	if err != nil {
		return image.Point{}, fmt.Errorf("failed to capture game window: %w", err)
	}
	if s.snapshots != nil {
		if path, err := s.snapshots.SaveDebugFrame(f, "aim"); err != nil {
			s.logger.LogError(err, "Сохранение кадра прицеливания")
		} else if path != "" {
			s.logger.Debug("📸 Кадр прицеливания: %s", path)
		}
	}

	match, err := locator.LocateStride(f, s.settings.Template, s.settings.Stride)
	if err != nil {
		return image.Point{}, fmt.Errorf("failed to locate ball: %w", err)
	}
	s.logger.Info("⚽ Мяч найден в %v (score = %d)", match.Point, match.Score)

	aim, err := planner.AimPoint(match.Point, g.GoalPoint(), s.settings.AimLength)
	if errors.Is(err, planner.ErrDegenerateVector) {
		s.logger.Info("⚠️ Мяч уже в точке ворот, удар без прицеливания")
		return match.Point, nil
	}
	if err != nil {
		return image.Point{}, err
	}
	return aim, nil
}

// track ждет попадания вокруг текущей позиции указателя
func (s *Shooter) track(res *Result) (tracker.Outcome, error) {
	pos, err := s.pointer.Position()
	if err != nil {
		return tracker.Outcome{}, fmt.Errorf("failed to read pointer position: %w", err)
	}
	res.Target = pos
	outcome, err := s.tracker.Track(pos, s.settings.Geometry.TargetRadius)
	if err != nil {
		return tracker.Outcome{}, fmt.Errorf("failed to track target at %v: %w", pos, err)
	}
	return outcome, nil
}

func (s *Shooter) release() error {
	if err := s.pointer.Release(input.ButtonLeft); err != nil {
		err = fmt.Errorf("failed to release %s: %w", input.ButtonLeft, err)
		s.logger.LogError(err, "Отпускание кнопки")
		return err
	}
	return nil
}

// record отправляет удар в журнал, если он подключен
func (s *Shooter) record(res Result, shotErr error) {
	if s.journal == nil {
		return
	}
	rec := database.NewShotRecord(res.Type.String())
	rec.Sample = res.Outcome.Sample
	rec.Count = res.Outcome.Count
	rec.Baseline = res.Baseline
	rec.Target = res.Target
	rec.Duration = res.Duration
	if shotErr != nil {
		rec.Outcome = "error"
		rec.ErrorText = shotErr.Error()
	} else {
		rec.Outcome = res.Outcome.Kind.String()
	}

	if s.journalImage && shotErr == nil {
		rect := tracker.Region(res.Target, s.settings.Geometry.TargetRadius)
		if f, err := s.source.Capture(rect); err != nil {
			s.logger.LogError(err, "Снимок области цели для журнала")
		} else if data, err := screenshot.FrameToPNG(f); err != nil {
			s.logger.LogError(err, "Кодирование снимка цели")
		} else {
			rec.ImageData = data
		}
	}
	s.journal.SaveShotResultAsync(rec)
}
