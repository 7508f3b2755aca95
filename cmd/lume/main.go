package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/wheelibin/lume/internal/clock"
	"github.com/wheelibin/lume/internal/config"
	"github.com/wheelibin/lume/internal/constants"
	"github.com/wheelibin/lume/internal/mode"
	"github.com/wheelibin/lume/internal/models"
	"github.com/wheelibin/lume/internal/pod"
	"github.com/wheelibin/lume/internal/sensor"
	"github.com/wheelibin/lume/internal/strip"
	"github.com/wheelibin/lume/internal/tui"
	"github.com/wheelibin/lume/internal/updater"
)

func main() {

	// the TUI owns the terminal, so keep logging quiet
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

	config.Initialise(logger)

	// the demo squeezes the whole day into 30 seconds
	clk := clock.System{}
	policy := mode.CyclePolicy{Epoch: clk.Now(), Step: constants.DemoModeStep}

	u := updater.New(logger, policy, updater.Options{
		Colours:                config.ModeColours(logger),
		FadeDuration:           config.FadeDuration(),
		BrightnessFadeDuration: config.BrightnessFadeDuration(),
		InitialBrightness:      config.IdleBrightness(),
	}, clk.Now())

	near, far := config.SensorRangeCM()
	brightnessMap := sensor.BrightnessMap{
		NearCM: near,
		FarCM:  far,
		Min:    config.MinBrightness(),
		Max:    config.MaxBrightness(),
		Idle:   config.IdleBrightness(),
	}

	frames := make(chan models.Frame, 1)
	p := pod.New(logger, clk, u, strip.NewNull(logger), pod.Options{
		Frames: frames,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// keys stand in for the proximity sensor
	t := tui.NewLumeTUI(config.StripLEDCount(), sensor.MaxRangeCM, func(cm float64) {
		u.SetTargetBrightness(brightnessMap.Target(cm))
	})

	go func() {
		for frame := range frames {
			t.RefreshFrame(frame)
		}
	}()

	if err := t.Run(); err != nil {
		logger.Error(err)
	}

	cancel()
	<-done
}
