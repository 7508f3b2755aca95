package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	rpio "github.com/stianeikeland/go-rpio/v4"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wheelibin/lume/internal/clock"
	"github.com/wheelibin/lume/internal/config"
	"github.com/wheelibin/lume/internal/constants"
	"github.com/wheelibin/lume/internal/lcd"
	"github.com/wheelibin/lume/internal/mode"
	"github.com/wheelibin/lume/internal/pod"
	"github.com/wheelibin/lume/internal/repos"
	"github.com/wheelibin/lume/internal/sensor"
	"github.com/wheelibin/lume/internal/status"
	"github.com/wheelibin/lume/internal/strip"
	"github.com/wheelibin/lume/internal/updater"
)

func main() {

	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename: "logs/lumed.log",
		MaxAge:   3,
	}, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: "2006/01/02 15:04:05",
	})
	logger.Info("lumed starting")

	config.Initialise(logger)

	gpioAvailable := true
	if err := rpio.Open(); err != nil {
		logger.Warn("gpio unavailable, running headless", "err", err)
		gpioAvailable = false
	} else {
		defer rpio.Close()
	}

	clk := clock.System{}
	u := updater.New(logger, buildPolicy(logger), updater.Options{
		Colours:                config.ModeColours(logger),
		FadeDuration:           config.FadeDuration(),
		BrightnessFadeDuration: config.BrightnessFadeDuration(),
		InitialBrightness:      config.IdleBrightness(),
		ModeCheckInterval:      constants.ModeCheckInterval,
	}, clk.Now())

	opts := pod.Options{BrightnessMap: brightnessMap()}

	var podStrip strip.Strip = strip.NewNull(logger)
	if gpioAvailable {
		if s, err := strip.NewAPA102(logger, config.StripLEDCount()); err != nil {
			logger.Error("led strip unavailable", "err", err)
		} else {
			podStrip = s
		}

		rs, e, data := config.LCDPins()
		display := lcd.NewHD44780(logger, rs, e, data)
		display.Init()
		opts.LCD = display

		trigger, echo := config.SensorPins()
		opts.Sensor = sensor.NewHCSR04(logger, trigger, echo)
	}
	defer podStrip.Close()

	if path := config.JournalPath(); path != "" {
		db, err := sql.Open("sqlite3", path)
		if err != nil {
			logger.Error("could not open journal db", "path", path, "err", err)
		} else {
			defer db.Close()
			journal, err := repos.NewTransitionRepo(logger, db)
			if err != nil {
				logger.Error(err)
			} else {
				opts.Journal = journal
			}
		}
	}

	if broker := config.MQTTBroker(); broker != "" {
		publisher := status.NewMQTTPublisher(logger, broker, config.MQTTClientID())
		publisher.Connect()
		defer publisher.Close()
		opts.Sinks = append(opts.Sinks, publisher)
	}

	if addr := config.StatusAddr(); addr != "" {
		stream := status.NewStreamServer(logger, addr)
		stream.Start()
		defer stream.Close()
		opts.Sinks = append(opts.Sinks, stream)
	}

	p := pod.New(logger, clk, u, podStrip, opts)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	<-quitChannel

	// stop the loop before the deferred closes take the peripherals away
	cancel()
	<-done
	logger.Info("lume is closing")
}

func buildPolicy(logger *log.Logger) mode.Policy {
	if config.PolicyType() == "solar" {
		return mode.NewSolarPolicy(logger)
	}
	day, afternoon, night := config.BoundaryHours()
	return mode.HourPolicy{DayStart: day, AfternoonStart: afternoon, NightStart: night}
}

func brightnessMap() sensor.BrightnessMap {
	near, far := config.SensorRangeCM()
	return sensor.BrightnessMap{
		NearCM: near,
		FarCM:  far,
		Min:    config.MinBrightness(),
		Max:    config.MaxBrightness(),
		Idle:   config.IdleBrightness(),
	}
}
