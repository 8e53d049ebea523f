package format

import (
	"strings"
	"testing"
	"time"
)

func TestSweepProgress(t *testing.T) {
	t.Parallel()
	p := NewSweepProgress(4)
	if p.Fraction() != 0 || p.ETA() != 0 {
		t.Fatalf("fresh progress: fraction=%v eta=%v, want zeros", p.Fraction(), p.ETA())
	}

	time.Sleep(5 * time.Millisecond)
	frac, eta := p.Complete()
	if frac != 0.25 {
		t.Errorf("fraction = %v, want 0.25", frac)
	}
	if eta <= 0 {
		t.Errorf("eta after one run = %v, want > 0", eta)
	}

	for range 5 {
		p.Complete()
	}
	if p.Done() != 4 || p.Fraction() != 1 {
		t.Errorf("done=%d fraction=%v, want 4 and 1 (completion is capped)", p.Done(), p.Fraction())
	}
	if p.ETA() != 0 {
		t.Errorf("eta at completion = %v, want 0", p.ETA())
	}
}

func TestSweepProgress_ZeroTotal(t *testing.T) {
	t.Parallel()
	p := NewSweepProgress(0)
	if frac, _ := p.Complete(); frac != 0 {
		t.Errorf("fraction = %v, want 0", frac)
	}
}

func TestSweepProgress_ETACap(t *testing.T) {
	t.Parallel()
	p := &SweepProgress{total: 1_000_000, done: 1}
	if eta := p.etaLocked(time.Hour); eta != maxETA {
		t.Errorf("eta = %v, want cap %v", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"Zero duration", 0, "estimating..."},
		{"Negative duration", -time.Second, "estimating..."},
		{"Less than a second", 500 * time.Millisecond, "< 1s"},
		{"One second", time.Second, "1s"},
		{"Multiple seconds", 45 * time.Second, "45s"},
		{"One minute", time.Minute, "1m"},
		{"Minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"One hour", time.Hour, "1h"},
		{"Hours and minutes", time.Hour + 15*time.Minute, "1h15m"},
		{"Hours only (no minutes)", 2 * time.Hour, "2h"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tc.eta); got != tc.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.expected)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},
		{-0.1, 10, "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.expected {
			t.Errorf("ProgressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 20)
	for _, want := range []string{"[", "]", "50.0%", "ETA: 30s"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatProgressBarWithETA = %q, missing %q", got, want)
		}
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatMillis(t *testing.T) {
	t.Parallel()
	if got := FormatMillis(1500 * time.Microsecond); got != "1.500" {
		t.Errorf("FormatMillis = %q, want 1.500", got)
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
	}

	for _, tt := range tests {
		if got := FormatNumberString(tt.input); got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    uint64
		expected string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{16 << 30, "16.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.input); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}
