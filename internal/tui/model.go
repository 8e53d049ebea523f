package tui

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/reducebench/internal/format"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/sysmon"
)

// SweepFunc runs a comparison sweep reporting to obs.
type SweepFunc func(ctx context.Context, obs orchestration.Observer) (*orchestration.Report, error)

// Layout constants for the dashboard.
const (
	headerHeight  = 1
	footerHeight  = 1
	metricsHeight = 5
	barHeight     = 1
	tickInterval  = 500 * time.Millisecond
)

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	runs    RunsModel
	metrics MetricsModel
	bar     progress.Model
	help    help.Model
	keymap  KeyMap

	ctx    context.Context
	cancel context.CancelFunc
	sweep  SweepFunc
	ref    *programRef

	agg    *orchestration.ProgressAggregator
	last   orchestration.AggregatedProgress
	report *orchestration.Report
	err    error
	done   bool

	width  int
	height int
}

// NewModel creates the dashboard for one sweep.
func NewModel(parent context.Context, workloadLabel, version string, sweep SweepFunc) Model {
	ctx, cancel := context.WithCancel(parent)
	bar := progress.New(progress.WithDefaultGradient())
	return Model{
		header:  NewHeaderModel(workloadLabel, version),
		runs:    NewRunsModel(),
		metrics: NewMetricsModel(),
		bar:     bar,
		help:    help.New(),
		keymap:  DefaultKeyMap(),
		ctx:     ctx,
		cancel:  cancel,
		sweep:   sweep,
		ref:     &programRef{},
	}
}

// Init starts the sweep and the sampling tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), startSweepCmd(m.ctx, m.ref, m.sweep))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.cancel()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.runs, cmd = m.runs.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case SweepStartedMsg:
		m.agg = orchestration.NewProgressAggregator(msg.Total)
		return m, nil

	case RunStartedMsg:
		m.runs.Started(msg.Index, msg.Strategy, msg.Backend)
		return m, nil

	case RunFinishedMsg:
		m.runs.Finished(msg.Index, msg.Record)
		if m.agg != nil {
			m.last = m.agg.Update(msg.Index, msg.Record)
		}
		return m, nil

	case SweepDoneMsg:
		m.done = true
		m.report, m.err = msg.Report, msg.Err
		m.header.SetDone()
		if msg.Report != nil {
			m.runs.Complete(msg.Report)
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), sampleMemStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.progressLine(),
		m.runs.View(),
		m.metrics.View(),
		m.footer(),
	)
}

// Report returns the finished report and the sweep error, if any.
func (m Model) Report() (*orchestration.Report, error) { return m.report, m.err }

func (m Model) progressLine() string {
	fraction := 0.0
	if m.agg != nil {
		fraction = m.agg.Fraction()
	}
	line := " " + m.bar.ViewAs(fraction)
	if m.last.Label != "" && !m.done {
		line += dimStyle.Render(fmt.Sprintf("  %s %s  ETA: %s", m.last.Label, m.last.Status, format.FormatETA(m.last.ETA)))
	}
	return line
}

func (m Model) footer() string {
	status := dimStyle.Render("running")
	if m.done {
		status = statusStyle(m.report).Render(summary(m.report, m.err))
	}
	return " " + status + "  " + m.help.View(m.keymap)
}

func summary(report *orchestration.Report, err error) string {
	switch {
	case err != nil:
		return "interrupted: " + err.Error()
	case report == nil:
		return "no report"
	case !report.Agreement:
		return "DISAGREEMENT with serial"
	}
	return fmt.Sprintf("done: %d ok, %d failed, %d timed out, %d skipped",
		report.Count(orchestration.StatusOK), report.Count(orchestration.StatusFailed),
		report.Count(orchestration.StatusTimedOut), report.Count(orchestration.StatusSkipped))
}

func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.bar.Width = max(m.width/2, 10)
	m.metrics.SetWidth(m.width)
	m.help.Width = m.width
	tableHeight := m.height - headerHeight - barHeight - metricsHeight - footerHeight - 4
	m.runs.SetSize(m.width-2, tableHeight)
}

// Run shows the dashboard while sweep executes and returns the sweep's
// result once the user quits.
func Run(ctx context.Context, workloadLabel, version string, sweep SweepFunc) (*orchestration.Report, error) {
	initTUIStyles()

	model := NewModel(ctx, workloadLabel, version, sweep)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if m, ok := final.(Model); ok {
		if !m.done {
			return nil, context.Canceled
		}
		return m.Report()
	}
	return nil, context.Canceled
}

// startSweepCmd runs the sweep on the command goroutine.
func startSweepCmd(ctx context.Context, ref *programRef, sweep SweepFunc) tea.Cmd {
	return func() tea.Msg {
		report, err := sweep(ctx, &Observer{ref: ref})
		return SweepDoneMsg{Report: report, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{HeapAlloc: ms.HeapAlloc, NumGC: ms.NumGC, NumGoroutine: runtime.NumGoroutine()}
	}
}
