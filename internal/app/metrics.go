package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks event loop counters for the shutdown summary.
type Metrics struct {
	frames        atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64
	bytesWritten  atomic.Uint64
	keys          atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records one rendered frame and the time spent composing it.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frames.Add(1)
	m.renderTotalNs.Add(ns)

	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordWrite records n bytes written to the terminal.
func (m *Metrics) RecordWrite(n int) {
	m.bytesWritten.Add(uint64(n))
}

// RecordKey records one decoded key event.
func (m *Metrics) RecordKey() {
	m.keys.Add(1)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Frames       uint64
	BytesWritten uint64
	Keys         uint64
	Timeouts     uint64
	RenderTotal  time.Duration
	RenderMax    time.Duration
	Uptime       time.Duration
}

// Snapshot returns the current counters. Timeouts comes from the decoder
// and is passed in by the caller.
func (m *Metrics) Snapshot(timeouts uint64) MetricsSnapshot {
	return MetricsSnapshot{
		Frames:       m.frames.Load(),
		BytesWritten: m.bytesWritten.Load(),
		Keys:         m.keys.Load(),
		Timeouts:     timeouts,
		RenderTotal:  time.Duration(m.renderTotalNs.Load()),
		RenderMax:    time.Duration(m.renderMaxNs.Load()),
		Uptime:       time.Since(m.startTime),
	}
}

// AvgRender returns the mean time spent composing a frame.
func (s MetricsSnapshot) AvgRender() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.RenderTotal / time.Duration(s.Frames)
}

// Fields returns the snapshot as logger fields.
func (s MetricsSnapshot) Fields() map[string]any {
	return map[string]any{
		"frames":     s.Frames,
		"bytes":      s.BytesWritten,
		"keys":       s.Keys,
		"timeouts":   s.Timeouts,
		"render_avg": s.AvgRender(),
		"render_max": s.RenderMax,
		"uptime":     s.Uptime.Round(time.Millisecond),
	}
}
