package mode

import (
	"time"

	"github.com/wheelibin/lume/internal/models"
)

// Policy decides which lighting mode is active at a point in time.
type Policy interface {
	ModeAt(t time.Time) models.Mode
}

// HourPolicy maps the hour of day onto a mode using half-open intervals:
// [DayStart,AfternoonStart) is daytime, [AfternoonStart,NightStart) is
// afternoon, anything else is night.
type HourPolicy struct {
	DayStart       int
	AfternoonStart int
	NightStart     int
}

func (p HourPolicy) ModeAt(t time.Time) models.Mode {
	h := t.Hour()
	switch {
	case h >= p.DayStart && h < p.AfternoonStart:
		return models.ModeDaytime
	case h >= p.AfternoonStart && h < p.NightStart:
		return models.ModeAfternoon
	default:
		return models.ModeNight
	}
}

// CyclePolicy drives the demo: a repeating cycle of Step per mode, in the
// order daytime -> afternoon -> night, starting at Epoch.
type CyclePolicy struct {
	Epoch time.Time
	Step  time.Duration
}

func (p CyclePolicy) ModeAt(t time.Time) models.Mode {
	period := 3 * p.Step
	if period <= 0 {
		return models.ModeNight
	}
	elapsed := t.Sub(p.Epoch) % period
	if elapsed < 0 {
		elapsed += period
	}
	switch {
	case elapsed < p.Step:
		return models.ModeDaytime
	case elapsed < 2*p.Step:
		return models.ModeAfternoon
	default:
		return models.ModeNight
	}
}
