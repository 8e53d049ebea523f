package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/reducebench/internal/format"
)

// MetricsModel shows host load sparklines and Go runtime counters.
type MetricsModel struct {
	cpu          *RingBuffer
	mem          *RingBuffer
	heapAlloc    uint64
	numGC        uint32
	numGoroutine int
	width        int
}

// NewMetricsModel creates a metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{cpu: NewRingBuffer(40), mem: NewRingBuffer(40)}
}

// SetWidth resizes the panel and its sample history.
func (m *MetricsModel) SetWidth(w int) {
	m.width = w
	spark := max(w-24, 8)
	m.cpu.Resize(spark)
	m.mem.Resize(spark)
}

// UpdateSysStats records a host sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.Push(msg.CPUPercent)
	m.mem.Push(msg.MemPercent)
}

// UpdateMemStats records runtime counters.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.heapAlloc = msg.HeapAlloc
	m.numGC = msg.NumGC
	m.numGoroutine = msg.NumGoroutine
}

// View renders the panel.
func (m MetricsModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s %s %s\n",
		metricLabelStyle.Render("CPU"), metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.cpu.Last())),
		cpuSparkStyle.Render(RenderSparkline(m.cpu.Slice())))
	fmt.Fprintf(&b, " %s %s %s\n",
		metricLabelStyle.Render("MEM"), metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.mem.Last())),
		memSparkStyle.Render(RenderSparkline(m.mem.Slice())))
	fmt.Fprintf(&b, " %s %s  %s %s  %s %s",
		metricLabelStyle.Render("Heap:"), metricValueStyle.Render(format.FormatBytes(m.heapAlloc)),
		metricLabelStyle.Render("GC:"), metricValueStyle.Render(fmt.Sprint(m.numGC)),
		metricLabelStyle.Render("Goroutines:"), metricValueStyle.Render(fmt.Sprint(m.numGoroutine)))
	return panelStyle.Width(max(m.width-2, 0)).Render(b.String())
}
