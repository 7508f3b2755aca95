package sensor

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	rpio "github.com/stianeikeland/go-rpio/v4"
)

// MaxRangeCM is the sentinel distance reported when no echo comes back
// within the timeout: nothing is in front of the pod.
const MaxRangeCM = 400.0

// an echo from MaxRangeCM takes ~23ms there and back
const echoTimeout = 25 * time.Millisecond

// HCSR04 reads distance from an HC-SR04 ultrasonic module: a 10us pulse on
// the trigger pin, then the width of the resulting pulse on the echo pin is
// the round-trip time of the ping.
type HCSR04 struct {
	logger  *log.Logger
	trigger rpio.Pin
	echo    rpio.Pin
}

func NewHCSR04(logger *log.Logger, triggerPin, echoPin int) *HCSR04 {
	trigger := rpio.Pin(triggerPin)
	trigger.Mode(rpio.Output)
	trigger.Low()

	echo := rpio.Pin(echoPin)
	echo.Mode(rpio.Input)
	echo.PullDown()

	return &HCSR04{logger: logger, trigger: trigger, echo: echo}
}

// ReadCM triggers a measurement and returns the distance in centimetres.
// A timed-out echo returns MaxRangeCM rather than an error.
func (s *HCSR04) ReadCM() float64 {
	s.trigger.High()
	busyWait(10 * time.Microsecond)
	s.trigger.Low()

	// wait for the echo line to go high
	start := time.Now()
	for s.echo.Read() == rpio.Low {
		if time.Since(start) > echoTimeout {
			s.logger.Debug("echo never started, nothing in range")
			return MaxRangeCM
		}
	}

	// time the high pulse
	pulseStart := time.Now()
	for s.echo.Read() == rpio.High {
		if time.Since(pulseStart) > echoTimeout {
			return MaxRangeCM
		}
	}
	pulse := time.Since(pulseStart)

	// speed of sound 343m/s, halved for the round trip
	cm := pulse.Seconds() * 34300 / 2
	if cm > MaxRangeCM {
		return MaxRangeCM
	}
	return cm
}

// the pulse widths here are far below timer granularity, so spin
func busyWait(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}

// BrightnessMap converts a hand distance into a target strip brightness: a
// hand at NearCM (or closer) asks for Max, backing away to FarCM slides
// linearly down to Min, and nothing in range at all means Idle.
type BrightnessMap struct {
	NearCM float64
	FarCM  float64
	Min    int
	Max    int
	Idle   int
}

func (m BrightnessMap) Target(distanceCM float64) int {
	if distanceCM >= m.FarCM {
		return m.Idle
	}
	if distanceCM <= m.NearCM {
		return m.Max
	}
	factor := (distanceCM - m.NearCM) / (m.FarCM - m.NearCM)
	return int(math.Round(float64(m.Max) - factor*float64(m.Max-m.Min)))
}
