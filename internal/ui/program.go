package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jgaura/aura/internal/aura"
)

// Snapshot is one refresh of the watched gateway.
type Snapshot struct {
	Gateway  *aura.Gateway
	HotWater *aura.HotWater
}

// FetchFunc reads the current gateway state.
type FetchFunc func(ctx context.Context) (Snapshot, error)

// snapshotMsg carries the result of a fetch into the model.
type snapshotMsg struct {
	snapshot Snapshot
	err      error
	at       time.Time
}

// tickMsg triggers the next scheduled refresh.
type tickMsg time.Time

// WatchModel is a Bubble Tea model that refreshes the status view on a fixed
// interval until the user quits.
type WatchModel struct {
	ctx      context.Context
	fetch    FetchFunc
	interval time.Duration
	names    map[string]string

	snapshot Snapshot
	err      error
	updated  time.Time
	loading  bool
	width    int
}

// NewWatchModel creates a watch view refreshing every interval.
func NewWatchModel(ctx context.Context, fetch FetchFunc, interval time.Duration, names map[string]string) WatchModel {
	return WatchModel{
		ctx:      ctx,
		fetch:    fetch,
		interval: interval,
		names:    names,
		loading:  true,
		width:    GetTerminalWidth(),
	}
}

// Init implements tea.Model
func (m WatchModel) Init() tea.Cmd {
	return m.refresh()
}

// refresh runs one fetch off the UI goroutine.
func (m WatchModel) refresh() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.fetch(m.ctx)
		return snapshotMsg{snapshot: snap, err: err, at: time.Now()}
	}
}

func (m WatchModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > MaxContentWidth {
			m.width = MaxContentWidth
		}

	case tickMsg:
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.refresh()

	case snapshotMsg:
		m.loading = false
		m.updated = msg.at
		m.err = msg.err
		if msg.err == nil {
			m.snapshot = msg.snapshot
		}
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		return m, m.scheduleTick()
	}

	return m, nil
}

// View implements tea.Model
func (m WatchModel) View() string {
	var body string
	switch {
	case m.snapshot.Gateway != nil:
		body = RenderStatus(StatusView{
			Gateway:  m.snapshot.Gateway,
			HotWater: m.snapshot.HotWater,
			Names:    m.names,
			Width:    m.width,
		})
	case m.loading:
		body = ProgressLabelStyle.Render("Connecting to gateway...")
	}

	if m.err != nil {
		body += "\n" + ErrorMessageStyle.Render("  "+FailureMarker+" "+aura.GetShortErrorMessage(m.err))
	}

	status := "refreshing..."
	if !m.loading && !m.updated.IsZero() {
		status = fmt.Sprintf("updated %s, next in %s", m.updated.Format("15:04:05"), m.interval)
	}
	return body + "\n" + FooterStyle.Render(status+" · r refresh · q quit") + "\n"
}

// Err returns the error of the last refresh, if any.
func (m WatchModel) Err() error {
	return m.err
}

// RunWatch runs the watch view until the user quits or ctx is cancelled.
func RunWatch(ctx context.Context, fetch FetchFunc, interval time.Duration, names map[string]string) error {
	p := tea.NewProgram(NewWatchModel(ctx, fetch, interval, names), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
