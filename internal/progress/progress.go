// Package progress carries typed pipeline progress events from the
// orchestrator to whatever presents them.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Stage identifies the step an event reports on
type Stage string

const (
	StageExtractStart  Stage = "extract_start"
	StageExtractFull   Stage = "extract_full"
	StageExtractChunks Stage = "extract_chunks"
	StageExtractChunk  Stage = "extract_chunk"
	StageExtractDone   Stage = "extract_done"

	StageEncyclopedia Stage = "encyclopedia"
	StageWeb          Stage = "web"
	StageAnalyzing    Stage = "analyzing"
	StageCompleted    Stage = "completed"

	StageClaimStart Stage = "claim_start"
	StageClaimDone  Stage = "claim_done"
)

// Event is one progress update. Zero-valued counters are omitted when
// rendered.
type Event struct {
	Stage   Stage  `json:"stage"`
	Percent int    `json:"percent,omitempty"` // 0-100 within the current claim
	Message string `json:"message,omitempty"`
	Found   int    `json:"found,omitempty"` // Records or claims found so far
	Index   int    `json:"index,omitempty"` // 1-based chunk or claim index
	Total   int    `json:"total,omitempty"` // Chunk or claim count
	ClaimID string `json:"claim_id,omitempty"`
}

func (e Event) String() string {
	s := string(e.Stage)
	if e.Total > 0 {
		s += fmt.Sprintf(" [%d/%d]", e.Index, e.Total)
	}
	if e.Percent > 0 {
		s += fmt.Sprintf(" %d%%", e.Percent)
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// Sink receives progress events in emission order
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event
var Discard Sink = SinkFunc(func(Event) {})

// OrDiscard returns s, or Discard when s is nil
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// Multi fans an event out to several sinks in order
type Multi []Sink

func (m Multi) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

// ChannelSink delivers events on a buffered channel. Emit blocks when the
// buffer is full so no event is dropped or reordered.
type ChannelSink struct {
	ch     chan Event
	mu     sync.RWMutex
	closed bool
}

// NewChannelSink creates a sink with the given buffer size
func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{ch: make(chan Event, buffer)}
}

// Events returns the receive side of the channel
func (c *ChannelSink) Events() <-chan Event {
	return c.ch
}

// Emit sends e unless the sink is closed
func (c *ChannelSink) Emit(e Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	c.ch <- e
}

// Close closes the channel. Later emits are ignored.
func (c *ChannelSink) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}

// LogSink writes events to slog at debug level
type LogSink struct {
	Logger *slog.Logger
}

func (l LogSink) Emit(e Event) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("progress",
		"stage", e.Stage,
		"percent", e.Percent,
		"found", e.Found,
		"index", e.Index,
		"total", e.Total,
		"message", e.Message,
	)
}

// WriterSink prints one human-readable line per event
type WriterSink struct {
	W io.Writer
}

func (w WriterSink) Emit(e Event) {
	_, _ = fmt.Fprintf(w.W, "  %s\n", e)
}
