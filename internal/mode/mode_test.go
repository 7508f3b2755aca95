package mode_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wheelibin/lume/internal/mode"
	"github.com/wheelibin/lume/internal/models"
)

func Test_HourPolicy_ModeAt(t *testing.T) {

	policy := mode.HourPolicy{DayStart: 7, AfternoonStart: 17, NightStart: 21}

	tests := []struct {
		name     string
		hour     int
		expected models.Mode
	}{
		{name: "early morning is night", hour: 3, expected: models.ModeNight},
		{name: "just before day start", hour: 6, expected: models.ModeNight},
		{name: "day start", hour: 7, expected: models.ModeDaytime},
		{name: "mid morning", hour: 8, expected: models.ModeDaytime},
		{name: "last daytime hour", hour: 16, expected: models.ModeDaytime},
		{name: "afternoon start", hour: 17, expected: models.ModeAfternoon},
		{name: "evening", hour: 18, expected: models.ModeAfternoon},
		{name: "last afternoon hour", hour: 20, expected: models.ModeAfternoon},
		{name: "night start", hour: 21, expected: models.ModeNight},
		{name: "late night", hour: 22, expected: models.ModeNight},
		{name: "midnight", hour: 0, expected: models.ModeNight},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ts := time.Date(2023, 6, 1, test.hour, 30, 0, 0, time.Local)
			assert.Equal(t, test.expected, policy.ModeAt(ts))
		})
	}
}

func Test_CyclePolicy_ModeAt(t *testing.T) {

	epoch := time.Date(2023, 6, 1, 12, 0, 0, 0, time.Local)
	policy := mode.CyclePolicy{Epoch: epoch, Step: 10 * time.Second}

	tests := []struct {
		name     string
		offset   time.Duration
		expected models.Mode
	}{
		{name: "cycle start", offset: 0, expected: models.ModeDaytime},
		{name: "just before first boundary", offset: 9999 * time.Millisecond, expected: models.ModeDaytime},
		{name: "10s", offset: 10 * time.Second, expected: models.ModeAfternoon},
		{name: "15s", offset: 15 * time.Second, expected: models.ModeAfternoon},
		{name: "20s", offset: 20 * time.Second, expected: models.ModeNight},
		{name: "just before wrap", offset: 29999 * time.Millisecond, expected: models.ModeNight},
		{name: "30s wraps to daytime", offset: 30 * time.Second, expected: models.ModeDaytime},
		{name: "several cycles in", offset: 95 * time.Second, expected: models.ModeDaytime},
		{name: "before the epoch", offset: -5 * time.Second, expected: models.ModeNight},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, policy.ModeAt(epoch.Add(test.offset)))
		})
	}
}
