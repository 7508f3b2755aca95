package mode

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nathan-osman/go-sunrise"
	"github.com/spf13/viper"

	"github.com/wheelibin/lume/internal/models"
)

// SolarPolicy derives the mode boundaries from the local sunrise and sunset
// for the day in question. Boundaries are pattern strings: a fixed time
// ("06:30"), "sunrise"/"sunset", or an offset like "sunset-2h".
type SolarPolicy struct {
	logger *log.Logger

	DayStart       string
	AfternoonStart string
	NightStart     string

	SunriseMin string
	SunriseMax string
	SunsetMin  string
	SunsetMax  string
}

// NewSolarPolicy builds a policy from the solar.* config keys.
func NewSolarPolicy(logger *log.Logger) *SolarPolicy {
	return &SolarPolicy{
		logger:         logger,
		DayStart:       viper.GetString("solar.dayStart"),
		AfternoonStart: viper.GetString("solar.afternoonStart"),
		NightStart:     viper.GetString("solar.nightStart"),
		SunriseMin:     viper.GetString("solar.sunriseMin"),
		SunriseMax:     viper.GetString("solar.sunriseMax"),
		SunsetMin:      viper.GetString("solar.sunsetMin"),
		SunsetMax:      viper.GetString("solar.sunsetMax"),
	}
}

func (p *SolarPolicy) ModeAt(t time.Time) models.Mode {
	sunrise, sunset := p.CalculateSunriseSunset(t)

	dayStart := TimeFromPattern(p.DayStart, sunrise, sunset, t)
	afternoonStart := TimeFromPattern(p.AfternoonStart, sunrise, sunset, t)
	nightStart := TimeFromPattern(p.NightStart, sunrise, sunset, t)

	switch {
	case t.Compare(dayStart) > -1 && t.Before(afternoonStart):
		return models.ModeDaytime
	case t.Compare(afternoonStart) > -1 && t.Before(nightStart):
		return models.ModeAfternoon
	default:
		return models.ModeNight
	}
}

// CalculateSunriseSunset returns the local sunrise and sunset for the day of
// baseDate, clamped to the configured min/max windows.
func (p *SolarPolicy) CalculateSunriseSunset(baseDate time.Time) (time.Time, time.Time) {
	latLng := strings.Split(viper.GetString("geoLocation"), ",")
	lat, _ := strconv.ParseFloat(latLng[0], 64)
	lng, _ := strconv.ParseFloat(latLng[1], 64)
	rise, set := sunrise.SunriseSunset(
		lat, lng,
		baseDate.Year(), baseDate.Month(), baseDate.Day(),
	)
	rise = rise.Local()
	set = set.Local()
	p.logger.Debug("calculated local sunrise and sunset",
		"sunrise", rise.Format("15:04"),
		"sunset", set.Format("15:04"),
	)

	sunriseMin := TimeFromConfigTimeString(p.SunriseMin, baseDate)
	sunriseMax := TimeFromConfigTimeString(p.SunriseMax, baseDate)
	sunsetMin := TimeFromConfigTimeString(p.SunsetMin, baseDate)
	sunsetMax := TimeFromConfigTimeString(p.SunsetMax, baseDate)

	if rise.Before(sunriseMin) {
		rise = sunriseMin
	}
	if rise.After(sunriseMax) {
		rise = sunriseMax
	}
	if set.Before(sunsetMin) {
		set = sunsetMin
	}
	if set.After(sunsetMax) {
		set = sunsetMax
	}
	return rise, set
}

func TimeFromPattern(patternTime string, sunrise time.Time, sunset time.Time, baseDate time.Time) time.Time {

	// sunrise or sunrise offset
	if strings.Contains(patternTime, "sunrise") {
		return timeFromAstronomicalPatternTime(patternTime, "sunrise", sunrise)
	}

	// sunset or sunset offset
	if strings.Contains(patternTime, "sunset") {
		return timeFromAstronomicalPatternTime(patternTime, "sunset", sunset)
	}

	// time e.g 19:30
	return TimeFromConfigTimeString(patternTime, baseDate)
}

// returns a Time object built from the supplied time string (e.g. "06:30") and a base date
func TimeFromConfigTimeString(timeString string, baseDate time.Time) time.Time {
	timeHM := strings.Split(timeString, ":")
	hour, _ := strconv.Atoi(timeHM[0])
	mins := 0
	if len(timeHM) > 1 {
		mins, _ = strconv.Atoi(timeHM[1])
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), hour, mins, 0, 0, time.Local)
}

// returns an adjusted eventTime e.g ("sunset-1h", "sunset", 2023-06-27 21:43:18) -> 2023-06-27 20:43:18
func timeFromAstronomicalPatternTime(patternTime string, event string, eventTime time.Time) time.Time {
	var result time.Time
	if patternTime == event {
		result = eventTime
	} else {
		offset, _ := time.ParseDuration(patternTime[len(event):])
		result = eventTime.Add(offset)
	}
	return result
}
