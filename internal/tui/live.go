// Package tui provides the interactive live view of a running simulation.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/yongdeokkim7/rodsim/internal/metrics"
	"github.com/yongdeokkim7/rodsim/internal/sim"
	"github.com/yongdeokkim7/rodsim/internal/viz"
)

const (
	frameRate       = 60
	historyCapacity = 600
	graphHeight     = 12
	graphWidth      = 70
)

type TickMsg time.Time

type Model struct {
	stepper       *sim.Stepper
	scenario      string
	stepsPerFrame int
	running       bool
	tipHistory    []float64
	energy        float64
}

func NewModel(stepper *sim.Stepper, scenario string, dt float64) Model {
	stepsPerFrame := int(1.0 / float64(frameRate) / dt)
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	return Model{
		stepper:       stepper,
		scenario:      scenario,
		stepsPerFrame: stepsPerFrame,
		running:       true,
		tipHistory:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.stepper.Step()
			}
			probes := m.stepper.Probes()
			if len(probes) > 0 {
				m.tipHistory = append(m.tipHistory, probes[0][1])
				if len(m.tipHistory) > historyCapacity {
					m.tipHistory = m.tipHistory[1:]
				}
			}
			m.energy = metrics.TotalEnergy(m.stepper.Collection())
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	header := viz.HeaderStyle.Render(fmt.Sprintf("rodsim live — %s", m.scenario))

	graph := "collecting data..."
	if len(m.tipHistory) > 1 {
		graph = asciigraph.Plot(m.tipHistory,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("tip height"),
		)
	}

	status := viz.StatusRunning.Render("running")
	if !m.running {
		status = viz.StatusPaused.Render("paused")
	}

	stats := viz.StatsStyle.Render(fmt.Sprintf(
		"%s\n%s %s\n%s %s\n%s %s\n%s %s",
		status,
		viz.LabelStyle.Render("time"), viz.ValueStyle.Render(fmt.Sprintf("%.4f s", m.stepper.Time())),
		viz.LabelStyle.Render("steps"), viz.ValueStyle.Render(fmt.Sprintf("%d", m.stepper.Steps())),
		viz.LabelStyle.Render("systems"), viz.ValueStyle.Render(fmt.Sprintf("%d", m.stepper.Collection().Len())),
		viz.LabelStyle.Render("energy"), viz.ValueStyle.Render(fmt.Sprintf("%.6f J", m.energy)),
	))

	body := lipgloss.JoinHorizontal(lipgloss.Top, viz.GraphStyle.Render(graph), stats)
	help := viz.HelpStyle.Render("space pause · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

// Run starts the live view and blocks until the user quits.
func Run(stepper *sim.Stepper, scenario string, dt float64) error {
	p := tea.NewProgram(NewModel(stepper, scenario, dt))
	_, err := p.Run()
	return err
}
