package lcd

import (
	"time"

	"github.com/charmbracelet/log"
	rpio "github.com/stianeikeland/go-rpio/v4"
)

const Columns = 16
const Rows = 2

// HD44780 drives a 16x2 character LCD over a 4-bit GPIO bus (RS, E and four
// data pins, R/W tied to ground).
type HD44780 struct {
	logger *log.Logger
	rs     rpio.Pin
	e      rpio.Pin
	data   [4]rpio.Pin
}

func NewHD44780(logger *log.Logger, rsPin, ePin int, dataPins []int) *HD44780 {
	l := &HD44780{
		logger: logger,
		rs:     rpio.Pin(rsPin),
		e:      rpio.Pin(ePin),
	}
	for i := 0; i < 4 && i < len(dataPins); i++ {
		l.data[i] = rpio.Pin(dataPins[i])
	}

	l.rs.Mode(rpio.Output)
	l.e.Mode(rpio.Output)
	for _, p := range l.data {
		p.Mode(rpio.Output)
	}
	return l
}

// Init runs the HD44780 4-bit initialisation sequence.
func (l *HD44780) Init() {
	time.Sleep(50 * time.Millisecond)
	l.rs.Low()

	// three "function set 8-bit" knocks, then drop to 4-bit
	l.writeNibble(0x03)
	time.Sleep(5 * time.Millisecond)
	l.writeNibble(0x03)
	time.Sleep(5 * time.Millisecond)
	l.writeNibble(0x03)
	time.Sleep(time.Millisecond)
	l.writeNibble(0x02)

	l.command(0x28) // 4-bit, 2 lines, 5x8 font
	l.command(0x0C) // display on, cursor off
	l.command(0x06) // entry mode, advance right
	l.Clear()
}

func (l *HD44780) Clear() {
	l.command(0x01)
	time.Sleep(2 * time.Millisecond)
}

// SetCursor moves the write position to the given column and row.
func (l *HD44780) SetCursor(col, row int) {
	if col < 0 || col >= Columns || row < 0 || row >= Rows {
		return
	}
	offsets := [Rows]byte{0x00, 0x40}
	l.command(0x80 | (offsets[row] + byte(col)))
}

// Print writes text at the current cursor position, clipped to the row.
func (l *HD44780) Print(s string) {
	if len(s) > Columns {
		s = s[:Columns]
	}
	for _, ch := range []byte(s) {
		l.writeByte(ch, true)
	}
}

func (l *HD44780) command(b byte) {
	l.writeByte(b, false)
}

func (l *HD44780) writeByte(b byte, isData bool) {
	if isData {
		l.rs.High()
	} else {
		l.rs.Low()
	}
	l.writeNibble(b >> 4)
	l.writeNibble(b & 0x0F)
	time.Sleep(50 * time.Microsecond)
}

func (l *HD44780) writeNibble(nibble byte) {
	for i, p := range l.data {
		if nibble&(1<<uint(i)) != 0 {
			p.High()
		} else {
			p.Low()
		}
	}
	l.pulseEnable()
}

func (l *HD44780) pulseEnable() {
	l.e.High()
	time.Sleep(time.Microsecond)
	l.e.Low()
	time.Sleep(50 * time.Microsecond)
}
