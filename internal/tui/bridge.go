package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/reduce"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the observer needs a pointer that survives.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Observer forwards sweep events to the dashboard as messages.
type Observer struct {
	ref *programRef
}

var _ orchestration.Observer = (*Observer)(nil)

func (o *Observer) SweepStarted(total int) { o.ref.Send(SweepStartedMsg{Total: total}) }

func (o *Observer) RunStarted(index int, s reduce.Strategy, b harness.Backend) {
	o.ref.Send(RunStartedMsg{Index: index, Strategy: s, Backend: b})
}

func (o *Observer) RunFinished(index int, rec orchestration.BenchmarkRecord) {
	o.ref.Send(RunFinishedMsg{Index: index, Record: rec})
}

// SweepFinished is a no-op: the final report arrives with SweepDoneMsg.
func (o *Observer) SweepFinished(*orchestration.Report) {}
