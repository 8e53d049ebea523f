package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/reduce"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(context.Background(), "sqrt (1000)", "dev", func(context.Context, orchestration.Observer) (*orchestration.Report, error) {
		return nil, nil
	})
	t.Cleanup(m.cancel)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func okRecord(s reduce.Strategy, b harness.Backend) orchestration.BenchmarkRecord {
	return orchestration.BenchmarkRecord{
		Strategy: s, Backend: b, Workers: 4, Status: orchestration.StatusOK,
		Elapsed: time.Millisecond, Result: 21097.455887,
	}
}

func TestModel_SweepLifecycle(t *testing.T) {
	m := newTestModel(t)
	m = step(t, m, SweepStartedMsg{Total: 2})
	m = step(t, m, RunStartedMsg{Index: 0, Strategy: reduce.Serial, Backend: harness.None})

	if rows := m.runs.Rows(); len(rows) != 1 || rows[0][6] != "running" {
		t.Fatalf("rows after start = %v", rows)
	}

	m = step(t, m, RunFinishedMsg{Index: 0, Record: okRecord(reduce.Serial, harness.None)})
	m = step(t, m, RunStartedMsg{Index: 1, Strategy: reduce.Atomic, Backend: harness.Threads})
	m = step(t, m, RunFinishedMsg{Index: 1, Record: okRecord(reduce.Atomic, harness.Threads)})

	if m.agg.Fraction() != 1 {
		t.Errorf("fraction = %v, want 1", m.agg.Fraction())
	}
	if m.last.Label != "atomic/threads" {
		t.Errorf("last label = %q", m.last.Label)
	}

	report := &orchestration.Report{Agreement: true, Records: []orchestration.BenchmarkRecord{
		okRecord(reduce.Serial, harness.None), okRecord(reduce.Atomic, harness.Threads),
	}}
	report.Records[0].Verdict = orchestration.VerdictAgrees
	report.Records[1].Verdict = orchestration.VerdictAgrees
	m = step(t, m, SweepDoneMsg{Report: report})

	if !m.done {
		t.Fatal("model should be done")
	}
	if got := m.runs.Rows()[1][5]; got != "yes" {
		t.Errorf("verdict column = %q after completion, want yes", got)
	}
	got, err := m.Report()
	if got != report || err != nil {
		t.Errorf("Report() = %p, %v", got, err)
	}
	if view := m.View(); !strings.Contains(view, "done: 2 ok") {
		t.Errorf("footer missing summary:\n%s", view)
	}
}

func TestModel_QuitCancelsSweep(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key should produce tea.QuitMsg")
	}
	if m.ctx.Err() == nil {
		t.Error("quitting must cancel the sweep context")
	}
}

func TestModel_TickStopsWhenDone(t *testing.T) {
	m := newTestModel(t)
	if _, cmd := m.Update(TickMsg(time.Now())); cmd == nil {
		t.Error("tick while running should schedule sampling")
	}
	m = step(t, m, SweepDoneMsg{Err: errors.New("interrupted")})
	if _, cmd := m.Update(TickMsg(time.Now())); cmd != nil {
		t.Error("tick after completion should stop")
	}
	if !strings.Contains(m.View(), "interrupted") {
		t.Error("view should report the sweep error")
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := NewModel(context.Background(), "w", "dev", nil)
	defer m.cancel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View = %q", got)
	}
}

func TestModel_StartSweepCmd(t *testing.T) {
	report := &orchestration.Report{ID: "x"}
	var observed orchestration.Observer
	cmd := startSweepCmd(context.Background(), &programRef{}, func(_ context.Context, obs orchestration.Observer) (*orchestration.Report, error) {
		observed = obs
		obs.SweepStarted(1)
		return report, nil
	})
	msg, ok := cmd().(SweepDoneMsg)
	if !ok || msg.Report != report {
		t.Fatalf("startSweepCmd produced %#v", msg)
	}
	if _, ok := observed.(*Observer); !ok {
		t.Errorf("sweep received %T, want *Observer", observed)
	}
}

func TestMetricsModel(t *testing.T) {
	m := NewMetricsModel()
	m.SetWidth(60)
	m.UpdateSysStats(SysStatsMsg{CPUPercent: 50, MemPercent: 100})
	m.UpdateMemStats(MemStatsMsg{HeapAlloc: 2048, NumGC: 3, NumGoroutine: 7})

	view := m.View()
	for _, want := range []string{"50.0%", "100.0%", "2.0 KiB", "█"} {
		if !strings.Contains(view, want) {
			t.Errorf("metrics view missing %q:\n%s", want, view)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	for _, b := range km.ShortHelp() {
		if !b.Enabled() || len(b.Keys()) == 0 {
			t.Errorf("binding %v has no keys", b.Help())
		}
	}
	hasCtrlC := false
	for _, k := range km.Quit.Keys() {
		hasCtrlC = hasCtrlC || k == "ctrl+c"
	}
	if !hasCtrlC {
		t.Error("expected Quit binding to include ctrl+c")
	}
}

func TestProgramRef_SendNilProgram(t *testing.T) {
	var ref programRef
	ref.Send(SweepStartedMsg{Total: 1})
}
