package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mode is one of the three fixed lighting states tied to time of day.
type Mode string

const (
	ModeDaytime   Mode = "daytime"
	ModeAfternoon Mode = "afternoon"
	ModeNight     Mode = "night"
)

// RGB is a strip colour, one byte per channel.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// ParseRGB reads an "r,g,b" string back into an RGB value.
func ParseRGB(s string) (RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, errors.New("colour must be r,g,b")
	}

	channels := [3]uint8{}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return RGB{}, errors.New("colour channels must be 0-255")
		}
		channels[i] = uint8(v)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// Frame is what the pod should be displaying right now.
type Frame struct {
	Mode       Mode
	Colour     RGB
	Brightness int
}

// Transition records the moment a new mode became active and a colour fade
// began.
type Transition struct {
	From       Mode
	To         Mode
	At         time.Time
	FromColour RGB
	ToColour   RGB
}
