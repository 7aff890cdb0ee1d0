// Package viewer shows a scenario replay live in the terminal.
package viewer

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tphakala/go-xr-interact/internal/loader"
	"github.com/tphakala/go-xr-interact/internal/scene"
)

// tickMsg advances the replay by one frame. Ticks from a chain started
// before the last resume carry an older gen and are dropped.
type tickMsg struct {
	gen int
}

// Model is a bubbletea model stepping a scene in real time.
type Model struct {
	scene    *scene.Scene
	interval time.Duration

	frame  scene.Frame
	paused bool
	gen    int
	err    error
}

// New returns a viewer for s, stepping at the scenario frame rate scaled by
// speed. A non-positive speed plays at real time.
func New(s *scene.Scene, speed float64) Model {
	if speed <= 0 {
		speed = 1
	}
	dt := s.Scenario().FrameTime() / speed
	return Model{scene: s, interval: time.Duration(dt * float64(time.Second))}
}

// Init implements tea.Model interface.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
			if !m.paused {
				m.gen++
				return m, m.tick()
			}
		case "n", "right":
			if m.paused && !m.scene.Done() {
				m.step()
			}
		}
	case tickMsg:
		if msg.gen != m.gen || m.paused || m.scene.Done() {
			return m, nil
		}
		m.step()
		return m, m.tick()
	}
	return m, nil
}

// View implements tea.Model interface.
func (m Model) View() string {
	var b strings.Builder
	sc := m.scene.Scenario()

	b.WriteString(fmt.Sprintf("xrsim: %s\n", sc.Name))
	b.WriteString(strings.Repeat("=", 8+len(sc.Name)) + "\n\n")

	state := "playing"
	switch {
	case m.err != nil:
		state = "error: " + m.err.Error()
	case m.scene.Done():
		state = "finished"
	case m.paused:
		state = "paused"
	}
	b.WriteString(fmt.Sprintf("Frame %d/%d  t=%.3fs  [%s]\n\n", m.frame.Index, m.scene.Frames(), m.frame.Time, state))

	hand := m.frame.Hand
	p := m.frame.Interactor.Position
	b.WriteString(fmt.Sprintf("Hand   (%6.3f %6.3f %6.3f)  %s %.2f", p.X(), p.Y(), p.Z(), hand.Blend.Phase, hand.Blend.Amount))
	if hand.Blend.TargetPoseID != "" {
		b.WriteString("  pose " + hand.Blend.TargetPoseID)
	}
	if hand.Animation.Animation != "" {
		b.WriteString(fmt.Sprintf("  anim %s %.2f", hand.Animation.Animation, hand.Animation.Weight))
	}
	b.WriteString("\n\n")

	for _, o := range m.frame.Objects {
		pos := o.Pose.Position
		b.WriteString(fmt.Sprintf("%-12s %-12s (%6.3f %6.3f %6.3f)", o.Name, kindName(o.Kind), pos.X(), pos.Y(), pos.Z()))
		switch o.Kind {
		case loader.KindSlider, loader.KindFixedSlider:
			b.WriteString(fmt.Sprintf("  value %.3f", o.Value))
		case loader.KindHinge:
			b.WriteString(fmt.Sprintf("  angle %.1f°", o.Value))
		}
		if o.Index >= 0 {
			b.WriteString(fmt.Sprintf("  stop %d", o.Index))
		}
		if o.Held {
			b.WriteString("  held")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n(space pause, n step, q quit)")
	return b.String()
}

// Frame returns the last stepped frame.
func (m Model) Frame() scene.Frame { return m.frame }

// Paused reports whether playback is paused.
func (m Model) Paused() bool { return m.paused }

func (m *Model) step() {
	f, err := m.scene.Step()
	if err != nil {
		m.err = err
		return
	}
	m.frame = f
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func kindName(kind string) string {
	if kind == "" {
		return loader.KindThrowable
	}
	return kind
}
