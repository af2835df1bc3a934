// SPDX-License-Identifier: MIT
package tui

import (
	"fmt"
	"strings"

	"spectra/internal/analysis"
	"spectra/internal/playground"
	"spectra/internal/plot"
	"spectra/internal/timing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E05D5D"))
)

// ScreenType defines which screen is currently active
type ScreenType int

const (
	ListScreen ScreenType = iota
	ResultScreen
)

var (
	keyQuit  = key.NewBinding(key.WithKeys("q", "ctrl+c"))
	keyUp    = key.NewBinding(key.WithKeys("up", "k"))
	keyDown  = key.NewBinding(key.WithKeys("down", "j"))
	keyEnter = key.NewBinding(key.WithKeys("enter"))
	keyBack  = key.NewBinding(key.WithKeys("esc"))
)

// Options configures a run started from the picker.
type Options struct {
	SampleRate    uint32
	PeakThreshold float32
	Peaks         int
	// OnFrame receives every frame produced, e.g. to publish it.
	OnFrame func(plot.Frame)
}

// Result summarizes one scenario run.
type Result struct {
	Scenario string
	Elapsed  string
	Samples  int
	Peaks    []analysis.Peak
	Centroid float64
	Err      error
}

type resultMsg Result

// ScenarioListModel is the Bubble Tea model listing playground scenarios.
type ScenarioListModel struct {
	scenarios     []playground.Scenario
	selectedIndex int
	viewport      viewport.Model
	ready         bool
	running       bool
	activeScreen  ScreenType
	result        Result
	opts          Options
}

// NewScenarioListModel creates a model over every registered scenario.
func NewScenarioListModel(opts Options) ScenarioListModel {
	return ScenarioListModel{
		scenarios:    playground.Scenarios(),
		activeScreen: ListScreen,
		opts:         opts,
	}
}

func (m ScenarioListModel) Init() tea.Cmd {
	return nil
}

// runScenario plays name in the background and reports a resultMsg.
func runScenario(name string, opts Options) tea.Cmd {
	return func() tea.Msg {
		stop := timing.Measure("tui " + name)
		p, err := playground.Play(name, opts.SampleRate)
		elapsed := stop()
		if err != nil {
			return resultMsg{Scenario: name, Err: err}
		}

		frame := p.Frame(name, opts.SampleRate)
		if opts.OnFrame != nil {
			opts.OnFrame(frame)
		}

		return resultMsg{
			Scenario: name,
			Elapsed:  elapsed.String(),
			Samples:  frame.Samples(),
			Peaks:    analysis.SlotPeaks(p.Middle, opts.PeakThreshold, opts.Peaks),
			Centroid: analysis.SlotCentroid(p.Middle),
		}
	}
}

func (m ScenarioListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.viewport.Style = lipgloss.NewStyle()
			m.ready = true
			m.viewport.SetContent(m.render())
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}

	case resultMsg:
		m.running = false
		m.result = Result(msg)
		m.activeScreen = ResultScreen
		m.viewport.SetContent(m.render())

	case tea.KeyMsg:
		if key.Matches(msg, keyQuit) {
			return m, tea.Quit
		}

		switch m.activeScreen {
		case ListScreen:
			switch {
			case key.Matches(msg, keyUp):
				if m.selectedIndex > 0 {
					m.selectedIndex--
				}
			case key.Matches(msg, keyDown):
				if m.selectedIndex < len(m.scenarios)-1 {
					m.selectedIndex++
				}
			case key.Matches(msg, keyEnter):
				if len(m.scenarios) > 0 && !m.running {
					m.running = true
					cmds = append(cmds, runScenario(m.scenarios[m.selectedIndex].Name, m.opts))
				}
			}
		case ResultScreen:
			if key.Matches(msg, keyBack) {
				m.activeScreen = ListScreen
			}
		}
		m.viewport.SetContent(m.render())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m ScenarioListModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var title, help string
	if m.activeScreen == ListScreen {
		title = titleStyle.Render("Signal Playground")
		help = infoStyle.Render("↑/↓: Navigate • Enter: Run • q: Quit")
	} else {
		title = titleStyle.Render("Scenario: " + m.result.Scenario)
		help = infoStyle.Render("Esc: Back • q: Quit")
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.viewport.View(), help)
}

func (m ScenarioListModel) render() string {
	if m.activeScreen == ResultScreen {
		return m.renderResult()
	}
	return m.renderScenarios()
}

func (m ScenarioListModel) renderScenarios() string {
	if len(m.scenarios) == 0 {
		return "No scenarios registered."
	}

	var sb strings.Builder
	for i, s := range m.scenarios {
		line := fmt.Sprintf("%-14s %s\n", s.Name, s.Description)
		if i == m.selectedIndex {
			line = highlightStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
	}
	if m.running {
		sb.WriteString("\nRunning...\n")
	}
	return sb.String()
}

func (m ScenarioListModel) renderResult() string {
	r := m.result
	if r.Err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", r.Err))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Sample rate: %d Hz\n", m.opts.SampleRate)
	fmt.Fprintf(&sb, "Samples:     %d\n", r.Samples)
	fmt.Fprintf(&sb, "Elapsed:     %s\n", r.Elapsed)
	fmt.Fprintf(&sb, "Centroid:    %.2f Hz\n\n", r.Centroid)

	if len(r.Peaks) == 0 {
		sb.WriteString("No peaks above threshold.\n")
		return sb.String()
	}
	sb.WriteString(highlightStyle.Render("Peaks") + "\n")
	for _, p := range r.Peaks {
		fmt.Fprintf(&sb, "  bin %4d  %8.2f Hz  amplitude %.3f\n", p.Bin, p.Frequency, p.Amplitude)
	}
	return sb.String()
}

// Run launches the scenario picker.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewScenarioListModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
