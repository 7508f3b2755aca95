package constants

import (
	"time"

	"github.com/wheelibin/lume/internal/models"
)

const FrameInterval = 50 * time.Millisecond
const SensorInterval = 200 * time.Millisecond

// how often the live daemon re-checks which mode is active
const ModeCheckInterval = time.Minute

// the demo cycles through all three modes, spending this long in each
const DemoModeStep = 10 * time.Second

const DefaultFadeDuration = 3 * time.Second
const DefaultBrightnessFadeDuration = 2 * time.Second

var (
	ColourDaytime   = models.RGB{R: 255, G: 255, B: 255}
	ColourAfternoon = models.RGB{R: 255, G: 126, B: 0}
	ColourNight     = models.RGB{R: 10, G: 36, B: 106}
)
