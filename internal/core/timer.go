package core

import "time"

// Pacer meters how many sweeps a frame-driven loop should run to hold a
// steady sweeps-per-second rate.
type Pacer struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxBurst    int
}

// NewPacer constructs a Pacer targeting the given sweeps per second.
func NewPacer(rate int) *Pacer {
	p := &Pacer{maxBurst: 8}
	p.SetRate(rate)
	p.accumulator = p.step
	return p
}

// SetRate changes the sweep rate. Non-positive rates fall back to 30.
func (p *Pacer) SetRate(rate int) {
	if rate <= 0 {
		rate = 30
	}
	p.step = time.Second / time.Duration(rate)
}

// Rate reports the configured sweeps per second.
func (p *Pacer) Rate() int { return int(time.Second / p.step) }

// Due reports how many sweeps are owed at time now. The count is capped so a
// stalled frame does not trigger an unbounded catch-up burst.
func (p *Pacer) Due(now time.Time) int {
	if p.last.IsZero() {
		p.last = now
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	n := int(p.accumulator / p.step)
	if n > p.maxBurst {
		n = p.maxBurst
		p.accumulator = 0
		return n
	}
	p.accumulator -= time.Duration(n) * p.step
	return n
}
