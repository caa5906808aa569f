package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgaura/aura/internal/aura"
)

func sampleGateway() *aura.Gateway {
	return &aura.Gateway{
		ID:   "9001",
		Name: aura.DefaultGatewayName,
		Thermostats: []aura.Thermostat{
			{ID: "AB01", Name: "LivingRoom", Preset: "Low", CurrentTemp: 20, TargetTemp: 21.5},
			{ID: "AB02", Name: "Kitchen", On: true, Preset: "ON", CurrentTemp: 18, TargetTemp: 19},
		},
	}
}

func TestHeaderRender(t *testing.T) {
	h := NewHeader("Set Preset", "jgaura set-preset AB01 Low", map[string]string{
		"Thermostat": "AB01",
		"Preset":     "Low",
	}).SetWidth(80)

	out := h.Render()
	assert.Contains(t, out, "SET PRESET")
	assert.Contains(t, out, "jgaura set-preset AB01 Low")
	assert.Less(t, strings.Index(out, "Preset:"), strings.Index(out, "Thermostat:"), "params are sorted")
}

func TestResultRender(t *testing.T) {
	ok := NewSuccessResult("Preset updated", map[string]string{"Preset": "Low"}).SetWidth(80).Render()
	assert.Contains(t, ok, "SUCCESS")
	assert.Contains(t, ok, "Preset updated")
	assert.Contains(t, ok, "Low")

	fail := NewFailureResult("Login failed", errors.New("bad credentials"), []string{"Check the password"}).SetWidth(80).Render()
	assert.Contains(t, fail, "FAILED")
	assert.Contains(t, fail, "bad credentials")
	assert.Contains(t, fail, "Check the password")

	warn := NewWarningResult("Not verified", nil).AddDetail("Reason", "timeout").Render()
	assert.Contains(t, warn, "WARNING")
	assert.Contains(t, warn, "timeout")
}

func TestTroubleshootingTips(t *testing.T) {
	tips := TroubleshootingTips(aura.GetTroubleshootingHint(aura.NewAuthError("x", nil)))
	require.NotEmpty(t, tips)
	assert.Contains(t, tips[0], "email address")
	for _, tip := range tips {
		assert.NotContains(t, tip, "•")
	}
}

func TestProgress(t *testing.T) {
	p := NewProgress("Updating", 3).SetWidth(80).SetStepNames([]string{"Log in", "Send command", "Verify"})

	p.UpdateStep(1, StepComplete, "")
	p.UpdateStep(2, StepRunning, "attempt 1")
	assert.Equal(t, 2, p.Current)
	assert.InDelta(t, 1.0/3.0, p.Percent, 0.001)

	p.UpdateStep(2, StepComplete, "")
	p.UpdateStep(3, StepSkipped, "--no-verify")
	assert.InDelta(t, 1.0, p.Percent, 0.001)

	// Out of range steps are ignored
	p.UpdateStep(9, StepFailed, "")

	out := p.Render()
	assert.Contains(t, out, "Send command")
	assert.Contains(t, out, "--no-verify")
	assert.Contains(t, out, "100%")
}

func TestRunner_Success(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(RunnerConfig{
		Title:     "Set Preset",
		Command:   "jgaura set-preset AB01 Low",
		StepNames: []string{"Log in", "Send command"},
		Output:    &buf,
		Width:     80,
	})

	details, err := r.Run(context.Background(), func(ctx context.Context, onStep StepCallback) (map[string]string, error) {
		onStep(1, "", StepRunning, "")
		onStep(1, "", StepComplete, "")
		onStep(2, "Send preset", StepComplete, "B05")
		return map[string]string{"Preset": "Low"}, nil
	})

	require.NoError(t, err)
	assert.Contains(t, details, "Duration")
	out := buf.String()
	assert.Contains(t, out, "Send preset")
	assert.Contains(t, out, "Set Preset complete")
	assert.Equal(t, StepComplete, r.Progress().Steps[1].Status)
}

func TestRunner_Failure(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(RunnerConfig{
		Title:   "Set Hot Water",
		Command: "jgaura hotwater on",
		Output:  &buf,
		Width:   80,
		Troubleshooting: func(err error) []string {
			return []string{"Try again later"}
		},
	})

	_, err := r.Run(context.Background(), func(context.Context, StepCallback) (map[string]string, error) {
		return nil, aura.NewCommandError("rejected")
	})

	require.Error(t, err)
	assert.Nil(t, r.Progress())
	out := buf.String()
	assert.Contains(t, out, "Set Hot Water failed")
	assert.Contains(t, out, "Try again later")
}

func TestRenderStatus(t *testing.T) {
	out := RenderStatus(StatusView{
		Gateway:  sampleGateway(),
		HotWater: &aura.HotWater{ID: "AB12", On: true},
		Names:    map[string]string{"AB01": "Lounge"},
		Width:    90,
	})

	assert.Contains(t, out, "JG-GATEWAY")
	assert.Contains(t, out, "Device 9001")
	assert.Contains(t, out, "Lounge")
	assert.NotContains(t, out, "LivingRoom")
	assert.Contains(t, out, "Kitchen")
	assert.Contains(t, out, "21.5°C")
	assert.Contains(t, out, "heating")
	assert.Contains(t, out, "Hot water (AB12):")
}

func TestRenderStatus_NoThermostats(t *testing.T) {
	out := RenderStatus(StatusView{
		Gateway: &aura.Gateway{ID: "9001", Name: aura.DefaultGatewayName, Thermostats: []aura.Thermostat{}},
	})
	assert.Contains(t, out, "No thermostats")
	assert.NotContains(t, out, "Hot water")
}

func TestWatchModel(t *testing.T) {
	calls := 0
	fetch := func(context.Context) (Snapshot, error) {
		calls++
		return Snapshot{Gateway: sampleGateway()}, nil
	}

	m := NewWatchModel(context.Background(), fetch, time.Minute, nil)
	assert.Contains(t, m.View(), "Connecting")

	msg := m.Init()()
	next, cmd := m.Update(msg)
	m = next.(WatchModel)
	require.NotNil(t, cmd, "a tick is scheduled after each refresh")
	assert.Equal(t, 1, calls)
	assert.Contains(t, m.View(), "LivingRoom")
	assert.Contains(t, m.View(), "next in 1m0s")

	// A tick starts a refresh
	next, cmd = m.Update(tickMsg(time.Now()))
	m = next.(WatchModel)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "refreshing")

	// Ticks while a refresh is in flight are dropped
	_, cmd = m.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd)
}

func TestWatchModel_KeepsLastSnapshotOnError(t *testing.T) {
	m := NewWatchModel(context.Background(), nil, time.Minute, nil)

	next, _ := m.Update(snapshotMsg{snapshot: Snapshot{Gateway: sampleGateway()}, at: time.Now()})
	m = next.(WatchModel)

	next, _ = m.Update(snapshotMsg{err: aura.NewCommunicationError("fetch failed", nil), at: time.Now()})
	m = next.(WatchModel)

	view := m.View()
	assert.Contains(t, view, "LivingRoom")
	assert.Contains(t, view, "Gateway service unreachable after re-login")
	assert.Error(t, m.Err())
}

func TestWatchModel_Quit(t *testing.T) {
	m := NewWatchModel(context.Background(), nil, time.Minute, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPromptLine(t *testing.T) {
	var out bytes.Buffer
	line, err := PromptLine(strings.NewReader("  me@example.com \n"), &out, "Email: ")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", line)
	assert.Equal(t, "Email: ", out.String())

	line, err = PromptLine(strings.NewReader("no-newline"), &out, "")
	require.NoError(t, err)
	assert.Equal(t, "no-newline", line)

	_, err = PromptLine(strings.NewReader(""), &out, "")
	assert.Error(t, err)
}
