package tracker

import "time"

// Clock источник времени для цикла опроса
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock настоящее время
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// pacer держит абсолютный дедлайн следующего кадра, чтобы паузы не накапливали дрейф.
// Если обработка кадра заняла больше периода, следующий кадр идет сразу.
type pacer struct {
	clock  Clock
	period time.Duration
	next   time.Time
	paced  bool
}

func newPacer(clock Clock, period time.Duration, paced bool) *pacer {
	p := &pacer{clock: clock, period: period, paced: paced && period > 0}
	if p.paced {
		p.next = clock.Now().Add(period)
	}
	return p
}

func (p *pacer) wait() {
	if !p.paced {
		return
	}
	if slack := p.next.Sub(p.clock.Now()); slack > 0 {
		p.clock.Sleep(slack)
	}
	p.next = p.next.Add(p.period)
}
