// SPDX-License-Identifier: MIT
package tui

import (
	"errors"
	"strings"
	"testing"

	"spectra/internal/analysis"
	"spectra/internal/playground"
	"spectra/internal/plot"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m ScenarioListModel, msg tea.Msg) (ScenarioListModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(ScenarioListModel)
	require.True(t, ok, "Update returned %T", next)
	return model, cmd
}

func readyModel(t *testing.T, opts Options) ScenarioListModel {
	t.Helper()
	m, _ := update(t, NewScenarioListModel(opts), tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestViewBeforeWindowSize(t *testing.T) {
	assert.Equal(t, "Initializing...", NewScenarioListModel(Options{}).View())
}

func TestNavigation(t *testing.T) {
	m := readyModel(t, Options{})
	require.Len(t, m.scenarios, len(playground.Names()))

	m, _ = update(t, m, keyMsg("up"))
	assert.Equal(t, 0, m.selectedIndex, "cannot move above the first entry")

	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("j"))
	assert.Equal(t, 2, m.selectedIndex)

	for range len(m.scenarios) + 3 {
		m, _ = update(t, m, keyMsg("down"))
	}
	assert.Equal(t, len(m.scenarios)-1, m.selectedIndex, "cannot move below the last entry")

	m, _ = update(t, m, keyMsg("k"))
	assert.Equal(t, len(m.scenarios)-2, m.selectedIndex)

	assert.Contains(t, m.View(), "Signal Playground")
}

func TestEnterRunsScenario(t *testing.T) {
	var frames []plot.Frame
	m := readyModel(t, Options{
		SampleRate:    64,
		PeakThreshold: 0.5,
		Peaks:         3,
		OnFrame:       func(f plot.Frame) { frames = append(frames, f) },
	})

	// Scenarios are sorted by name; "fft" is third.
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("down"))
	require.Equal(t, "fft", m.scenarios[m.selectedIndex].Name)

	m, cmd := update(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.running)

	msg := runScenario("fft", m.opts)()
	res, ok := msg.(resultMsg)
	require.True(t, ok, "got %T", msg)
	require.NoError(t, res.Err)
	assert.Equal(t, "fft", res.Scenario)
	assert.Positive(t, res.Samples)
	assert.NotEmpty(t, res.Peaks)
	require.Len(t, frames, 1)
	assert.Equal(t, "fft", frames[0].Scenario)

	m, _ = update(t, m, msg)
	assert.False(t, m.running)
	assert.Equal(t, ResultScreen, m.activeScreen)
	view := m.View()
	assert.Contains(t, view, "Scenario: fft")
	assert.Contains(t, view, "Peaks")

	m, _ = update(t, m, keyMsg("esc"))
	assert.Equal(t, ListScreen, m.activeScreen)
}

func TestResultError(t *testing.T) {
	m := readyModel(t, Options{})
	m, _ = update(t, m, resultMsg{Scenario: "broken", Err: errors.New("boom")})
	assert.Contains(t, m.View(), "boom")
}

func TestResultWithoutPeaks(t *testing.T) {
	m := readyModel(t, Options{SampleRate: 64})
	m, _ = update(t, m, resultMsg{Scenario: "dft", Peaks: []analysis.Peak{}})
	assert.True(t, strings.Contains(m.View(), "No peaks above threshold."))
}

func TestQuit(t *testing.T) {
	m := readyModel(t, Options{})
	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUnknownScenarioResult(t *testing.T) {
	msg := runScenario("nope", Options{SampleRate: 64})()
	res := msg.(resultMsg)
	assert.ErrorIs(t, res.Err, playground.ErrUnknownScenario)
}
