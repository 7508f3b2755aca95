package strip

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	rpio "github.com/stianeikeland/go-rpio/v4"

	"github.com/wheelibin/lume/internal/models"
)

// Strip is a logical run of identically coloured pixels.
type Strip interface {
	Fill(c models.RGB)
	SetBrightness(b int)
	Show() error
	Close() error
}

// gamma 2.2 lookup so low-end fades stay visually linear
var gamma [256]byte

func init() {
	for i := range gamma {
		gamma[i] = byte(math.Round(math.Pow(float64(i)/255, 2.2) * 255))
	}
}

// APA102 drives an APA102/DotStar strip over the Pi's SPI0 bus.
type APA102 struct {
	logger     *log.Logger
	count      int
	colour     models.RGB
	brightness int
}

func NewAPA102(logger *log.Logger, count int) (*APA102, error) {
	if err := rpio.SpiBegin(rpio.Spi0); err != nil {
		return nil, fmt.Errorf("opening spi for led strip: %w", err)
	}
	rpio.SpiSpeed(8000000)
	return &APA102{logger: logger, count: count}, nil
}

func (s *APA102) Fill(c models.RGB) { s.colour = c }

func (s *APA102) SetBrightness(b int) {
	if b < 0 {
		b = 0
	}
	if b > 255 {
		b = 255
	}
	s.brightness = b
}

func (s *APA102) Show() error {
	rpio.SpiTransmit(Encode(s.count, s.colour, s.brightness)...)
	return nil
}

func (s *APA102) Close() error {
	// blank the strip on the way out
	s.Fill(models.RGB{})
	s.SetBrightness(0)
	_ = s.Show()
	rpio.SpiEnd(rpio.Spi0)
	return nil
}

// Encode builds the APA102 wire frame: a zero start frame, one 4-byte slot
// per pixel (0xE0 | 5-bit global brightness, then gamma-corrected blue,
// green, red) and enough trailing clock bytes to latch every pixel.
func Encode(count int, c models.RGB, brightness int) []byte {
	global := byte(brightness >> 3)

	data := make([]byte, 0, 4+count*4+count/16+1)
	data = append(data, 0x00, 0x00, 0x00, 0x00)

	r, g, b := gamma[c.R], gamma[c.G], gamma[c.B]
	for i := 0; i < count; i++ {
		data = append(data, 0xE0|global, b, g, r)
	}

	for i := 0; i < count/16+1; i++ {
		data = append(data, 0xFF)
	}
	return data
}

// Null is a strip that goes nowhere, for headless runs and the demo.
type Null struct {
	logger     *log.Logger
	colour     models.RGB
	brightness int
}

func NewNull(logger *log.Logger) *Null {
	return &Null{logger: logger}
}

func (s *Null) Fill(c models.RGB)   { s.colour = c }
func (s *Null) SetBrightness(b int) { s.brightness = b }

func (s *Null) Show() error {
	s.logger.Debug("strip", "colour", s.colour, "brightness", s.brightness)
	return nil
}

func (s *Null) Close() error { return nil }
