package fader

import (
	"math"
	"sync"
	"time"

	"github.com/wheelibin/lume/internal/models"
)

// Fade linearly interpolates the displayed colour from Start to End over
// Duration, beginning at StartedAt. Once Duration has elapsed the current
// colour is exactly End, never a residual interpolation.
type Fade struct {
	Start     models.RGB
	End       models.RGB
	Current   models.RGB
	StartedAt time.Time
	Duration  time.Duration
}

func NewFade(initial models.RGB, duration time.Duration) Fade {
	return Fade{Start: initial, End: initial, Current: initial, Duration: duration}
}

// Retarget begins a new fade towards end, starting from whatever colour is
// currently displayed so a mid-fade retarget never jumps. Retargeting to the
// colour already being faded to is a no-op.
func (f *Fade) Retarget(end models.RGB, now time.Time) bool {
	if end == f.End {
		return false
	}
	f.Start = f.Current
	f.End = end
	f.StartedAt = now
	return true
}

// Advance recalculates the current colour for the given instant.
func (f *Fade) Advance(now time.Time) models.RGB {
	elapsed := now.Sub(f.StartedAt)
	if f.Duration <= 0 || elapsed >= f.Duration {
		f.Current = f.End
		return f.Current
	}
	if elapsed < 0 {
		elapsed = 0
	}

	factor := elapsed.Seconds() / f.Duration.Seconds()
	f.Current = models.RGB{
		R: lerpChannel(f.Start.R, f.End.R, factor),
		G: lerpChannel(f.Start.G, f.End.G, factor),
		B: lerpChannel(f.Start.B, f.End.B, factor),
	}
	return f.Current
}

func lerpChannel(start, end uint8, factor float64) uint8 {
	v := math.Round(float64(start)*(1-factor) + float64(end)*factor)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// Smoother walks a displayed brightness towards a target at a fixed rate; a
// full 0-255 sweep takes FadeDuration. The precise value is clamped at the
// target so it can never overshoot, however large the gap between updates.
// SetTarget may be called from a different goroutine than Advance.
type Smoother struct {
	mu           sync.Mutex
	target       float64
	precise      float64
	fadeDuration time.Duration
	lastUpdate   time.Time
}

func NewSmoother(initial int, fadeDuration time.Duration, now time.Time) *Smoother {
	v := clampBrightness(float64(initial))
	return &Smoother{target: v, precise: v, fadeDuration: fadeDuration, lastUpdate: now}
}

func (s *Smoother) SetTarget(target int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = clampBrightness(float64(target))
}

func (s *Smoother) Target() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.target)
}

// Value is the integer brightness actually applied to the strip.
func (s *Smoother) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value()
}

func (s *Smoother) value() int { return int(math.Floor(s.precise)) }

// Advance moves the precise value towards the target and returns the
// brightness to apply.
func (s *Smoother) Advance(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt := now.Sub(s.lastUpdate)
	s.lastUpdate = now
	if dt <= 0 {
		return s.value()
	}
	if s.fadeDuration <= 0 {
		s.precise = s.target
		return s.value()
	}

	step := 255 * (dt.Seconds() / s.fadeDuration.Seconds())
	if s.precise < s.target {
		s.precise = math.Min(s.precise+step, s.target)
	} else if s.precise > s.target {
		s.precise = math.Max(s.precise-step, s.target)
	}
	return s.value()
}

func clampBrightness(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
