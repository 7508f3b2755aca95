package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/wheelibin/lume/internal/models"
	"github.com/wheelibin/lume/internal/sensor"
)

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

type frameMessage struct {
	frame models.Frame
}

// LumeTUI wraps the bubbletea program so the pod loop can push frames in.
type LumeTUI struct {
	teaProgram *tea.Program
}

// NewLumeTUI builds the demo front end. onDistance is called whenever the
// simulated hand moves, with the new distance in cm.
func NewLumeTUI(ledCount int, distance float64, onDistance func(cm float64)) *LumeTUI {
	m := newModel(ledCount, distance, onDistance)
	p := tea.NewProgram(m, tea.WithAltScreen())
	return &LumeTUI{teaProgram: p}
}

// Run blocks until the user quits.
func (t *LumeTUI) Run() error {
	_, err := t.teaProgram.Run()
	return err
}

func (t *LumeTUI) RefreshFrame(f models.Frame) {
	t.teaProgram.Send(frameMessage{frame: f})
}

type model struct {
	frame      models.Frame
	ledCount   int
	distance   float64
	onDistance func(cm float64)
}

func newModel(ledCount int, distance float64, onDistance func(cm float64)) model {
	return model{
		frame:      models.Frame{Mode: models.ModeNight},
		ledCount:   ledCount,
		distance:   distance,
		onDistance: onDistance,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			// hand moves closer
			m.distance -= 5
			if m.distance < 0 {
				m.distance = 0
			}
			m.onDistance(m.distance)
		case "down", "j":
			// hand moves away
			m.distance += 5
			if m.distance > sensor.MaxRangeCM {
				m.distance = sensor.MaxRangeCM
			}
			m.onDistance(m.distance)
		}
		return m, nil

	case frameMessage:
		m.frame = msg.frame
		return m, nil

	default:
		return m, nil
	}
}

func (m model) View() string {

	// the strip, dimmed by the current brightness the way the hardware
	// would dim it
	scale := float64(m.frame.Brightness) / 255
	c := m.frame.Colour
	hex := fmt.Sprintf("#%02x%02x%02x",
		int(float64(c.R)*scale),
		int(float64(c.G)*scale),
		int(float64(c.B)*scale),
	)
	pixels := lo.Map(make([]struct{}, m.ledCount), func(_ struct{}, _ int) string {
		return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	})
	stripView := baseStyle.Render(strings.Join(pixels, ""))

	// the 16x2 character LCD
	row0 := fmt.Sprintf("%-16s", m.frame.Mode)
	row1 := fmt.Sprintf("%-16s", fmt.Sprintf("bright %d", m.frame.Brightness))
	lcdView := baseStyle.Render(row0 + "\n" + row1)

	help := fmt.Sprintf("hand at %.0fcm  up/down: move hand  q: quit", m.distance)

	return lipgloss.JoinVertical(lipgloss.Left, stripView, lcdView, help) + "\n"
}
