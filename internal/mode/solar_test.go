package mode_test

import (
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/wheelibin/lume/internal/mode"
	"github.com/wheelibin/lume/internal/models"
)

const timeFormat = "15:04"

func newSolarPolicy() *mode.SolarPolicy {
	p := mode.NewSolarPolicy(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}))
	p.DayStart = "sunrise"
	p.AfternoonStart = "sunset-2h"
	p.NightStart = "sunset"
	// pin the boundaries by clamping min == max, so the expected values
	// don't depend on the lat/lng calculation or local timezone
	p.SunriseMin = "06:00"
	p.SunriseMax = "06:00"
	p.SunsetMin = "18:00"
	p.SunsetMax = "18:00"
	return p
}

func Test_SolarPolicy_CalculateSunriseSunset_Clamped(t *testing.T) {
	viper.Set("geoLocation", "0,0")
	baseDate := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)

	p := newSolarPolicy()
	rise, set := p.CalculateSunriseSunset(baseDate)
	assert.Equal(t, "06:00", rise.Format(timeFormat))
	assert.Equal(t, "18:00", set.Format(timeFormat))
}

func Test_SolarPolicy_ModeAt(t *testing.T) {
	viper.Set("geoLocation", "0,0")

	p := newSolarPolicy()

	// with the pinned boundaries: daytime [06:00,16:00), afternoon
	// [16:00,18:00), night otherwise
	tests := []struct {
		name     string
		hour     int
		minute   int
		expected models.Mode
	}{
		{name: "before dawn", hour: 3, expected: models.ModeNight},
		{name: "just before sunrise", hour: 5, minute: 59, expected: models.ModeNight},
		{name: "sunrise", hour: 6, expected: models.ModeDaytime},
		{name: "mid morning", hour: 8, expected: models.ModeDaytime},
		{name: "just before the afternoon boundary", hour: 15, minute: 59, expected: models.ModeDaytime},
		{name: "two hours before sunset", hour: 16, expected: models.ModeAfternoon},
		{name: "just before sunset", hour: 17, minute: 59, expected: models.ModeAfternoon},
		{name: "sunset", hour: 18, expected: models.ModeNight},
		{name: "late evening", hour: 22, expected: models.ModeNight},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ts := time.Date(2023, 1, 1, test.hour, test.minute, 0, 0, time.Local)
			assert.Equal(t, test.expected, p.ModeAt(ts))
		})
	}
}

func Test_TimeFromPattern(t *testing.T) {

	baseDate := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)
	sunriseAt := time.Date(2023, 1, 1, 5, 59, 0, 0, time.Local)
	sunsetAt := time.Date(2023, 1, 1, 18, 6, 0, 0, time.Local)

	tests := []struct {
		patternTime string
		expected    time.Time
	}{
		{patternTime: "sunrise", expected: sunriseAt},
		{patternTime: "sunrise-1h", expected: sunriseAt.Add(-time.Hour)},
		{patternTime: "sunrise+3h", expected: sunriseAt.Add(3 * time.Hour)},
		{patternTime: "sunset", expected: sunsetAt},
		{patternTime: "sunset-2h", expected: sunsetAt.Add(-2 * time.Hour)},
		{patternTime: "sunset+1h", expected: sunsetAt.Add(time.Hour)},
		{patternTime: "19:30", expected: time.Date(2023, 1, 1, 19, 30, 0, 0, time.Local)},
	}

	for _, test := range tests {
		t.Run(test.patternTime, func(t *testing.T) {
			actual := mode.TimeFromPattern(test.patternTime, sunriseAt, sunsetAt, baseDate)
			assert.Equal(t, test.expected, actual)
		})
	}
}
