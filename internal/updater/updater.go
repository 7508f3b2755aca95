package updater

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/wheelibin/lume/internal/fader"
	"github.com/wheelibin/lume/internal/mode"
	"github.com/wheelibin/lume/internal/models"
)

// Updater is the pod's state machine. Each tick it selects the active mode
// (at most once per check interval), starts a colour fade when the mode
// changes, and smooths the displayed brightness towards its target.
type Updater struct {
	logger  *log.Logger
	policy  mode.Policy
	colours map[models.Mode]models.RGB

	mode       models.Mode
	fade       fader.Fade
	brightness *fader.Smoother

	checkInterval time.Duration
	lastModeCheck time.Time
	checkedOnce   bool
}

type Options struct {
	Colours                map[models.Mode]models.RGB
	FadeDuration           time.Duration
	BrightnessFadeDuration time.Duration
	InitialBrightness      int
	// ModeCheckInterval gates how often the policy is consulted.
	// Zero means every tick.
	ModeCheckInterval time.Duration
}

// New returns an updater in night mode showing the night colour, matching
// the pod's power-on state.
func New(logger *log.Logger, policy mode.Policy, opts Options, now time.Time) *Updater {
	return &Updater{
		logger:        logger,
		policy:        policy,
		colours:       opts.Colours,
		mode:          models.ModeNight,
		fade:          fader.NewFade(opts.Colours[models.ModeNight], opts.FadeDuration),
		brightness:    fader.NewSmoother(opts.InitialBrightness, opts.BrightnessFadeDuration, now),
		checkInterval: opts.ModeCheckInterval,
	}
}

func (u *Updater) Mode() models.Mode { return u.mode }

// SetTargetBrightness sets the level the displayed brightness should settle
// at; the value is reached gradually over the following ticks. It is safe to
// call from a different goroutine than Tick.
func (u *Updater) SetTargetBrightness(b int) {
	u.brightness.SetTarget(b)
}

// Tick advances the pod state to the given instant. It returns the frame to
// display, plus the transition if a new mode became active on this tick.
func (u *Updater) Tick(now time.Time) (models.Frame, *models.Transition) {
	var transition *models.Transition

	if u.shouldCheckMode(now) {
		u.lastModeCheck = now
		u.checkedOnce = true

		next := u.policy.ModeAt(now)
		if next != u.mode {
			from := u.mode
			fromColour := u.fade.Current
			u.mode = next
			u.fade.Retarget(u.colours[next], now)
			transition = &models.Transition{
				From:       from,
				To:         next,
				At:         now,
				FromColour: fromColour,
				ToColour:   u.colours[next],
			}
			u.logger.Info("mode changed", "from", from, "to", next)
		}
	}

	return models.Frame{
		Mode:       u.mode,
		Colour:     u.fade.Advance(now),
		Brightness: u.brightness.Advance(now),
	}, transition
}

func (u *Updater) shouldCheckMode(now time.Time) bool {
	if u.checkInterval <= 0 || !u.checkedOnce {
		return true
	}
	return now.Sub(u.lastModeCheck) >= u.checkInterval
}
