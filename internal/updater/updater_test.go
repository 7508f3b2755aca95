package updater_test

import (
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/wheelibin/lume/internal/mode"
	"github.com/wheelibin/lume/internal/models"
	"github.com/wheelibin/lume/internal/updater"
)

var testColours = map[models.Mode]models.RGB{
	models.ModeDaytime:   {R: 255, G: 255, B: 255},
	models.ModeAfternoon: {R: 255, G: 126, B: 0},
	models.ModeNight:     {R: 10, G: 36, B: 106},
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
}

func newTestUpdater(policy mode.Policy, checkInterval time.Duration, now time.Time) *updater.Updater {
	return updater.New(quietLogger(), policy, updater.Options{
		Colours:                testColours,
		FadeDuration:           2 * time.Second,
		BrightnessFadeDuration: 2 * time.Second,
		InitialBrightness:      40,
		ModeCheckInterval:      checkInterval,
	}, now)
}

func Test_Updater_StartsInNightMode(t *testing.T) {
	epoch := time.Date(2023, 6, 1, 22, 0, 0, 0, time.Local)
	u := newTestUpdater(mode.HourPolicy{DayStart: 7, AfternoonStart: 17, NightStart: 21}, 0, epoch)

	frame, transition := u.Tick(epoch)
	assert.Nil(t, transition)
	assert.Equal(t, models.ModeNight, frame.Mode)
	assert.Equal(t, testColours[models.ModeNight], frame.Colour)
	assert.Equal(t, 40, frame.Brightness)
}

func Test_Updater_ModeChangeStartsFade(t *testing.T) {
	assert := assert.New(t)

	// 08:00, so the hour policy picks daytime on the first tick
	epoch := time.Date(2023, 6, 1, 8, 0, 0, 0, time.Local)
	u := newTestUpdater(mode.HourPolicy{DayStart: 7, AfternoonStart: 17, NightStart: 21}, 0, epoch)

	frame, transition := u.Tick(epoch)
	assert.NotNil(transition)
	assert.Equal(models.ModeNight, transition.From)
	assert.Equal(models.ModeDaytime, transition.To)
	assert.Equal(testColours[models.ModeNight], transition.FromColour)
	assert.Equal(testColours[models.ModeDaytime], transition.ToColour)

	// fade has only just begun, still showing the night colour
	assert.Equal(models.ModeDaytime, frame.Mode)
	assert.Equal(testColours[models.ModeNight], frame.Colour)

	// once the fade duration has elapsed the colour is exactly the target
	frame, transition = u.Tick(epoch.Add(5 * time.Second))
	assert.Nil(transition)
	assert.Equal(testColours[models.ModeDaytime], frame.Colour)
}

func Test_Updater_SameModeIsANoOp(t *testing.T) {
	assert := assert.New(t)

	epoch := time.Date(2023, 6, 1, 8, 0, 0, 0, time.Local)
	u := newTestUpdater(mode.HourPolicy{DayStart: 7, AfternoonStart: 17, NightStart: 21}, 0, epoch)

	_, first := u.Tick(epoch)
	assert.NotNil(first)

	// same hour, mid fade: no second transition and the fade keeps going
	frameA, transition := u.Tick(epoch.Add(time.Second))
	assert.Nil(transition)
	frameB, transition := u.Tick(epoch.Add(time.Second))
	assert.Nil(transition)

	// a repeated tick at the same instant reproduces the same colour,
	// proving the fade state wasn't restarted
	assert.Equal(frameA.Colour, frameB.Colour)
}

func Test_Updater_RetargetMidFadeStartsFromDisplayedColour(t *testing.T) {
	assert := assert.New(t)

	// flips between two modes on consecutive checks
	epoch := time.Date(2023, 6, 1, 16, 59, 59, 0, time.Local)
	u := newTestUpdater(mode.HourPolicy{DayStart: 7, AfternoonStart: 17, NightStart: 21}, 0, epoch)

	_, transition := u.Tick(epoch)
	assert.Equal(models.ModeDaytime, transition.To)

	// one second into the night->daytime fade, the hour ticks over to 17
	// and the afternoon fade must start from the half-faded colour
	midFrame, _ := u.Tick(epoch.Add(999 * time.Millisecond))
	_, transition = u.Tick(epoch.Add(time.Second))
	assert.NotNil(transition)
	assert.Equal(models.ModeAfternoon, transition.To)
	assert.InDelta(float64(midFrame.Colour.R), float64(transition.FromColour.R), 1)
	assert.InDelta(float64(midFrame.Colour.G), float64(transition.FromColour.G), 1)
	assert.InDelta(float64(midFrame.Colour.B), float64(transition.FromColour.B), 1)
}

func Test_Updater_ModeCheckIsGated(t *testing.T) {
	assert := assert.New(t)

	// the first check happens immediately and picks daytime; the clock then
	// moves into the afternoon but the next check is a minute away
	epoch := time.Date(2023, 6, 1, 16, 59, 45, 0, time.Local)
	u := newTestUpdater(mode.HourPolicy{DayStart: 7, AfternoonStart: 17, NightStart: 21}, time.Minute, epoch)

	_, transition := u.Tick(epoch)
	assert.NotNil(transition)

	frame, transition := u.Tick(epoch.Add(30 * time.Second))
	assert.Nil(transition)
	assert.Equal(models.ModeDaytime, frame.Mode)

	// a minute after the first check the policy is consulted again
	frame, transition = u.Tick(epoch.Add(61 * time.Second))
	assert.NotNil(transition)
	assert.Equal(models.ModeAfternoon, frame.Mode)
}

func Test_Updater_DemoCycle(t *testing.T) {
	epoch := time.Date(2023, 6, 1, 12, 0, 0, 0, time.Local)
	u := newTestUpdater(mode.CyclePolicy{Epoch: epoch, Step: 10 * time.Second}, 0, epoch)

	tests := []struct {
		name     string
		offset   time.Duration
		expected models.Mode
	}{
		{name: "cycle start", offset: 0, expected: models.ModeDaytime},
		{name: "10s", offset: 10 * time.Second, expected: models.ModeAfternoon},
		{name: "20s", offset: 20 * time.Second, expected: models.ModeNight},
		{name: "30s wraps", offset: 30 * time.Second, expected: models.ModeDaytime},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			frame, _ := u.Tick(epoch.Add(test.offset))
			assert.Equal(t, test.expected, frame.Mode)
		})
	}
}

func Test_Updater_BrightnessFollowsTarget(t *testing.T) {
	assert := assert.New(t)

	epoch := time.Date(2023, 6, 1, 22, 0, 0, 0, time.Local)
	u := newTestUpdater(mode.HourPolicy{DayStart: 7, AfternoonStart: 17, NightStart: 21}, 0, epoch)

	u.SetTargetBrightness(255)
	frame, _ := u.Tick(epoch.Add(time.Second))
	// half the sweep time moves half the range from 40
	assert.Equal(167, frame.Brightness)

	frame, _ = u.Tick(epoch.Add(time.Minute))
	assert.Equal(255, frame.Brightness)
}
