package pod

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wheelibin/lume/internal/clock"
	"github.com/wheelibin/lume/internal/constants"
	"github.com/wheelibin/lume/internal/models"
	"github.com/wheelibin/lume/internal/sensor"
	"github.com/wheelibin/lume/internal/strip"
	"github.com/wheelibin/lume/internal/updater"
)

type display interface {
	SetCursor(col, row int)
	Print(s string)
}

type distanceReader interface {
	ReadCM() float64
}

type journal interface {
	Add(t models.Transition) error
}

// Sink receives the pod's status as it changes.
type Sink interface {
	PublishFrame(f models.Frame)
	PublishTransition(t models.Transition)
}

// Options carries the optional peripherals and sinks; any of them can be
// left unset and the pod just runs without it.
type Options struct {
	LCD           display
	Sensor        distanceReader
	BrightnessMap sensor.BrightnessMap
	Journal       journal
	Sinks         []Sink
	// Frames receives every displayed frame (non-blocking), for the TUI
	Frames chan<- models.Frame
}

// Pod ties the state updater to the hardware: it ticks the updater, applies
// each frame to the strip and LCD, feeds sensor readings back in as the
// brightness target and fans status out to the sinks.
type Pod struct {
	logger  *log.Logger
	clock   clock.Clock
	updater *updater.Updater
	strip   strip.Strip
	opts    Options

	lastFrame *models.Frame
}

func New(logger *log.Logger, clk clock.Clock, u *updater.Updater, s strip.Strip, opts Options) *Pod {
	return &Pod{
		logger:  logger,
		clock:   clk,
		updater: u,
		strip:   s,
		opts:    opts,
	}
}

// Run is the pod's main loop; it returns when the context is cancelled.
func (p *Pod) Run(ctx context.Context) {
	p.logger.Debug("pod.Run")

	frameTimer := time.NewTicker(constants.FrameInterval)
	defer frameTimer.Stop()
	sensorTimer := time.NewTicker(constants.SensorInterval)
	defer sensorTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pod.Run: stop signal received")
			return

		case <-sensorTimer.C:
			if p.opts.Sensor == nil {
				continue
			}
			distance := p.opts.Sensor.ReadCM()
			p.updater.SetTargetBrightness(p.opts.BrightnessMap.Target(distance))

		case <-frameTimer.C:
			now := p.clock.Now()
			frame, transition := p.updater.Tick(now)

			p.applyFrame(frame)
			if transition != nil {
				p.handleTransition(*transition)
			}

			if p.opts.Frames != nil {
				select {
				case p.opts.Frames <- frame:
				default:
				}
			}
		}
	}
}

func (p *Pod) applyFrame(frame models.Frame) {
	p.strip.Fill(frame.Colour)
	p.strip.SetBrightness(frame.Brightness)
	if err := p.strip.Show(); err != nil {
		p.logger.Error(err)
	}

	// LCD and sinks only need to hear about visible changes
	if p.lastFrame != nil && *p.lastFrame == frame {
		return
	}
	p.lastFrame = &frame

	if p.opts.LCD != nil {
		p.opts.LCD.SetCursor(0, 0)
		p.opts.LCD.Print(fmt.Sprintf("%-16s", frame.Mode))
		p.opts.LCD.SetCursor(0, 1)
		p.opts.LCD.Print(fmt.Sprintf("%-16s", fmt.Sprintf("bright %d", frame.Brightness)))
	}

	for _, sink := range p.opts.Sinks {
		sink.PublishFrame(frame)
	}
}

func (p *Pod) handleTransition(transition models.Transition) {
	if p.opts.Journal != nil {
		if err := p.opts.Journal.Add(transition); err != nil {
			p.logger.Error(err)
		}
	}
	for _, sink := range p.opts.Sinks {
		sink.PublishTransition(transition)
	}
}
