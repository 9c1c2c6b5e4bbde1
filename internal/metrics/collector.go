// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	Failures  int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	Failures    int64   `json:"failures"`
	TotalTimeMs int64   `json:"totalTimeMs"`
	AvgTimeMs   float64 `json:"avgTimeMs"`
	MinTimeMs   int64   `json:"minTimeMs"`
	MaxTimeMs   int64   `json:"maxTimeMs"`
}

// Snapshot represents the full server statistics at a point in time.
type Snapshot struct {
	UptimeSeconds  float64            `json:"uptimeSeconds"`
	ActiveSessions int64              `json:"activeSessions"`
	LeadSubmit     *OperationSnapshot `json:"leadSubmit,omitempty"`
	ChatSession    *OperationSnapshot `json:"chatSession,omitempty"`
	PageRender     *OperationSnapshot `json:"pageRender,omitempty"`
	GroupSelect    *OperationSnapshot `json:"groupSelect,omitempty"`
	SearchSuggest  *OperationSnapshot `json:"searchSuggest,omitempty"`
}

// Operation names for the collector.
const (
	OpLeadSubmit    = "lead_submit"
	OpChatSession   = "chat_session"
	OpPageRender    = "page_render"
	OpGroupSelect   = "group_select"
	OpSearchSuggest = "search_suggest"
)

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
	sessions  int64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for a successful operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// RecordFailure counts a failed attempt of an operation.
func (c *Collector) RecordFailure(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getOrCreate(op).Failures++
}

// SessionStarted counts a live demo stream.
func (c *Collector) SessionStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions++
}

// SessionEnded releases a live stream and records how long it lasted.
func (c *Collector) SessionEnded(duration time.Duration) {
	c.mu.Lock()
	c.sessions--
	c.mu.Unlock()
	c.RecordTiming(OpChatSession, duration)
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics) *OperationSnapshot {
	if m == nil || (m.Count == 0 && m.Failures == 0) {
		return nil
	}

	snap := &OperationSnapshot{
		Count:    m.Count,
		Failures: m.Failures,
	}
	if m.Count > 0 {
		snap.TotalTimeMs = m.TotalTime.Milliseconds()
		snap.AvgTimeMs = float64(m.TotalTime.Milliseconds()) / float64(m.Count)
		snap.MinTimeMs = m.MinTime.Milliseconds()
		snap.MaxTimeMs = m.MaxTime.Milliseconds()
	}
	return snap
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		UptimeSeconds:  time.Since(c.startTime).Seconds(),
		ActiveSessions: c.sessions,
		LeadSubmit:     snapshotOp(c.ops[OpLeadSubmit]),
		ChatSession:    snapshotOp(c.ops[OpChatSession]),
		PageRender:     snapshotOp(c.ops[OpPageRender]),
		GroupSelect:    snapshotOp(c.ops[OpGroupSelect]),
		SearchSuggest:  snapshotOp(c.ops[OpSearchSuggest]),
	}
}
