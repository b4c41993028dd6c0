package tracker

import (
	"fmt"
	"image"
	"strings"
	"time"

	"shotbot/internal/capture"
	"shotbot/internal/classifier"
)

// Policy условие срабатывания
type Policy int

const (
	// PolicyDelta срабатывание, когда счетчик превысил базовый уровень больше чем на Delta
	PolicyDelta Policy = iota
	// PolicySaturation срабатывание, когда счетчик достиг порога Saturation
	PolicySaturation
)

// ParsePolicy разбирает имя политики из конфигурации
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "delta":
		return PolicyDelta, nil
	case "saturation":
		return PolicySaturation, nil
	}
	return PolicyDelta, fmt.Errorf("unknown trigger policy %q", name)
}

func (p Policy) String() string {
	if p == PolicySaturation {
		return "saturation"
	}
	return "delta"
}

// BaselineMode какой отсчет становится базовым уровнем
type BaselineMode int

const (
	// BaselineFirstNonzero первый ненулевой счетчик
	BaselineFirstNonzero BaselineMode = iota
	// BaselineFirst самый первый счетчик, даже нулевой
	BaselineFirst
)

// ParseBaselineMode разбирает режим базового уровня
func ParseBaselineMode(name string) (BaselineMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "first_nonzero":
		return BaselineFirstNonzero, nil
	case "first":
		return BaselineFirst, nil
	}
	return BaselineFirstNonzero, fmt.Errorf("unknown baseline mode %q", name)
}

// Config параметры сессии отслеживания
type Config struct {
	Rule         classifier.Rule
	Policy       Policy
	Baseline     BaselineMode
	Delta        int           // прирост над базовым уровнем для PolicyDelta
	Saturation   int           // порог для PolicySaturation
	Paced        bool          // false = снимать кадры без пауз
	Period       time.Duration // период кадра при Paced
	SettleFrames int           // пауза перед первым кадром в периодах
	MaxSamples   int
}

// DefaultConfig 60 кадров по 16 мс после паузы в 10 кадров, красный по относительному правилу, прирост 300
func DefaultConfig() Config {
	return Config{
		Rule:         classifier.Relative,
		Policy:       PolicyDelta,
		Baseline:     BaselineFirstNonzero,
		Delta:        300,
		Saturation:   DefaultSaturation(classifier.Relative),
		Paced:        true,
		Period:       16 * time.Millisecond,
		SettleFrames: 10,
		MaxSamples:   60,
	}
}

// DefaultSaturation порог насыщения по умолчанию для правила цвета
func DefaultSaturation(rule classifier.Rule) int {
	if rule == classifier.Absolute {
		return 6200
	}
	return 5500
}

// Kind вид наблюдения
type Kind int

const (
	KindBaseline Kind = iota
	KindRising
	KindTriggered
	KindTimedOut
)

func (k Kind) String() string {
	switch k {
	case KindBaseline:
		return "baseline"
	case KindRising:
		return "rising"
	case KindTriggered:
		return "triggered"
	case KindTimedOut:
		return "timed_out"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Outcome наблюдение за сессией. Triggered и TimedOut завершают сессию.
type Outcome struct {
	Kind   Kind
	Sample int // номер кадра, начиная с 0
	Count  int // число пикселей цвета цели
}

// Terminal true для итоговых результатов
func (o Outcome) Terminal() bool {
	return o.Kind == KindTriggered || o.Kind == KindTimedOut
}

func (o Outcome) String() string {
	switch o.Kind {
	case KindTimedOut:
		return fmt.Sprintf("timed out after %d samples", o.Sample)
	default:
		return fmt.Sprintf("%s at sample %d: count = %d", o.Kind, o.Sample, o.Count)
	}
}

// Observer получает промежуточные наблюдения (Baseline, Rising) для диагностики
type Observer func(Outcome)

// Option настройка трекера
type Option func(*Tracker)

// WithClock подменяет часы (для тестов)
func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithObserver подписка на промежуточные наблюдения
func WithObserver(o Observer) Option {
	return func(t *Tracker) { t.observer = o }
}

// Tracker следит за областью вокруг точки удара и ловит вспышку попадания
type Tracker struct {
	cfg      Config
	source   capture.Source
	clock    Clock
	observer Observer
}

// New создает трекер
func New(source capture.Source, cfg Config, opts ...Option) *Tracker {
	t := &Tracker{cfg: cfg, source: source, clock: SystemClock{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Config текущие параметры
func (t *Tracker) Config() Config { return t.cfg }

// Region квадрат со стороной 2*radius с центром в center
func Region(center image.Point, radius int) image.Rectangle {
	topLeft := center.Sub(image.Pt(radius, radius))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(2*radius, 2*radius))}
}

// Track снимает кадры вокруг center, пока не сработает условие или не кончится бюджет кадров.
// Ошибка захвата прерывает сессию без повторов.
func (t *Tracker) Track(center image.Point, radius int) (Outcome, error) {
	rect := Region(center, radius)

	if t.cfg.SettleFrames > 0 && t.cfg.Period > 0 {
		t.clock.Sleep(time.Duration(t.cfg.SettleFrames) * t.cfg.Period)
	}

	p := newPacer(t.clock, t.cfg.Period, t.cfg.Paced)
	s := session{cfg: &t.cfg}
	for i := 0; i < t.cfg.MaxSamples; i++ {
		f, err := t.source.Capture(rect)
		if err != nil {
			return Outcome{}, fmt.Errorf("tracking sample %d: %w", i, err)
		}
		count := t.cfg.Rule.Count(f.Pix)

		out := s.observe(i, count)
		if out.Terminal() {
			return out, nil
		}
		if out.Kind != kindNone && t.observer != nil {
			t.observer(out)
		}
		p.wait()
	}
	return Outcome{Kind: KindTimedOut, Sample: t.cfg.MaxSamples, Count: s.prev}, nil
}

// kindNone ничего не изменилось
const kindNone Kind = -1

// session состояние одной сессии, создается заново на каждый Track
type session struct {
	cfg         *Config
	baseline    int
	hasBaseline bool
	prev        int
	hasPrev     bool
}

func (s *session) observe(i, count int) Outcome {
	changed := s.hasPrev && count != s.prev
	s.prev, s.hasPrev = count, true

	if !s.hasBaseline && (count != 0 || s.cfg.Baseline == BaselineFirst) {
		s.baseline, s.hasBaseline = count, true
		if s.cfg.Policy == PolicySaturation && count >= s.cfg.Saturation {
			return Outcome{Kind: KindTriggered, Sample: i, Count: count}
		}
		return Outcome{Kind: KindBaseline, Sample: i, Count: count}
	}

	switch s.cfg.Policy {
	case PolicySaturation:
		if count >= s.cfg.Saturation {
			return Outcome{Kind: KindTriggered, Sample: i, Count: count}
		}
	default:
		if s.hasBaseline && count > s.baseline+s.cfg.Delta {
			return Outcome{Kind: KindTriggered, Sample: i, Count: count}
		}
	}

	if changed {
		return Outcome{Kind: KindRising, Sample: i, Count: count}
	}
	return Outcome{Kind: kindNone, Sample: i, Count: count}
}
