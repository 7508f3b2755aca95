package config

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/wheelibin/lume/internal/constants"
	"github.com/wheelibin/lume/internal/models"
)

// Initialise sets up viper with the lume defaults and reads the config file
// if one exists. A missing file just means defaults; anything else is fatal.
func Initialise(logger *log.Logger) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath("/etc/lume/")
	viper.AddConfigPath("$HOME/.config/lume/")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.Warn("no config file found, using defaults")
		} else {
			logger.Fatalf("fatal error reading config file: %v", err)
		}
	}
}

func setDefaults() {
	viper.SetDefault("geoLocation", "51.5,-0.1")

	// "hours" or "solar"
	viper.SetDefault("policy", "hours")
	viper.SetDefault("hours.dayStart", 7)
	viper.SetDefault("hours.afternoonStart", 17)
	viper.SetDefault("hours.nightStart", 21)

	viper.SetDefault("solar.dayStart", "sunrise")
	viper.SetDefault("solar.afternoonStart", "sunset-2h")
	viper.SetDefault("solar.nightStart", "sunset")
	viper.SetDefault("solar.sunriseMin", "06:00")
	viper.SetDefault("solar.sunriseMax", "08:00")
	viper.SetDefault("solar.sunsetMin", "17:00")
	viper.SetDefault("solar.sunsetMax", "21:30")

	viper.SetDefault("colours.daytime", constants.ColourDaytime.String())
	viper.SetDefault("colours.afternoon", constants.ColourAfternoon.String())
	viper.SetDefault("colours.night", constants.ColourNight.String())

	viper.SetDefault("fadeDuration", constants.DefaultFadeDuration)
	viper.SetDefault("brightnessFadeDuration", constants.DefaultBrightnessFadeDuration)

	viper.SetDefault("brightness.idle", 40)
	viper.SetDefault("brightness.min", 10)
	viper.SetDefault("brightness.max", 255)

	viper.SetDefault("sensor.triggerPin", 23)
	viper.SetDefault("sensor.echoPin", 24)
	viper.SetDefault("sensor.nearCM", 5)
	viper.SetDefault("sensor.farCM", 60)

	viper.SetDefault("strip.leds", 30)

	viper.SetDefault("lcd.rsPin", 25)
	viper.SetDefault("lcd.ePin", 8)
	viper.SetDefault("lcd.dataPins", []int{12, 16, 20, 21})

	// empty means disabled
	viper.SetDefault("journalPath", "")
	viper.SetDefault("mqtt.broker", "")
	viper.SetDefault("mqtt.clientId", "lumed")
	viper.SetDefault("statusAddr", "")
}

// ModeColours returns the target strip colour for each mode. Unparseable
// entries fall back to the built-in colour for that mode.
func ModeColours(logger *log.Logger) map[models.Mode]models.RGB {
	defaults := map[models.Mode]models.RGB{
		models.ModeDaytime:   constants.ColourDaytime,
		models.ModeAfternoon: constants.ColourAfternoon,
		models.ModeNight:     constants.ColourNight,
	}

	colours := map[models.Mode]models.RGB{}
	for mode, fallback := range defaults {
		raw := viper.GetString("colours." + string(mode))
		colour, err := models.ParseRGB(raw)
		if err != nil {
			logger.Warn("invalid colour in config, using default", "mode", mode, "value", raw)
			colour = fallback
		}
		colours[mode] = colour
	}
	return colours
}

func PolicyType() string                     { return viper.GetString("policy") }
func FadeDuration() time.Duration            { return viper.GetDuration("fadeDuration") }
func BrightnessFadeDuration() time.Duration  { return viper.GetDuration("brightnessFadeDuration") }
func IdleBrightness() int                    { return viper.GetInt("brightness.idle") }
func MinBrightness() int                     { return viper.GetInt("brightness.min") }
func MaxBrightness() int                     { return viper.GetInt("brightness.max") }
func StripLEDCount() int                     { return viper.GetInt("strip.leds") }
func JournalPath() string                    { return viper.GetString("journalPath") }
func MQTTBroker() string                     { return viper.GetString("mqtt.broker") }
func MQTTClientID() string                   { return viper.GetString("mqtt.clientId") }
func StatusAddr() string                     { return viper.GetString("statusAddr") }

func BoundaryHours() (day, afternoon, night int) {
	return viper.GetInt("hours.dayStart"),
		viper.GetInt("hours.afternoonStart"),
		viper.GetInt("hours.nightStart")
}

func SensorPins() (trigger, echo int) {
	return viper.GetInt("sensor.triggerPin"), viper.GetInt("sensor.echoPin")
}

func SensorRangeCM() (near, far float64) {
	return viper.GetFloat64("sensor.nearCM"), viper.GetFloat64("sensor.farCM")
}

func LCDPins() (rs, e int, data []int) {
	return viper.GetInt("lcd.rsPin"), viper.GetInt("lcd.ePin"), viper.GetIntSlice("lcd.dataPins")
}
