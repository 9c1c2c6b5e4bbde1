package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/raphaelgruber/aisite-go/internal/chat"
	"github.com/raphaelgruber/aisite-go/internal/components"
	"github.com/raphaelgruber/aisite-go/internal/metrics"
	"github.com/raphaelgruber/aisite-go/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 25 * time.Second
	maxCommandSize = 4096
)

// Command types a stream client may send.
const (
	CmdSelect      = "select"
	CmdWheel       = "wheel"
	CmdDrag        = "drag"
	CmdLatest      = "latest"
	CmdMeasure     = "measure"
	CmdImageLoaded = "image_loaded"
)

// Command is a client message on the demo stream.
type Command struct {
	Type     string  `json:"type"`
	Group    string  `json:"group,omitempty"`
	Delta    float64 `json:"delta,omitempty"`
	Viewport float64 `json:"viewport,omitempty"`
	Content  float64 `json:"content,omitempty"`
	Key      string  `json:"key,omitempty"`
}

// Frame is a server message on the demo stream. Snapshot frames carry the
// view state with each entry pre-rendered to HTML.
type Frame struct {
	Type string `json:"type"`
	*chat.Snapshot
	Entries []FrameEntry `json:"entries,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// FrameEntry is one rendered transcript entry.
type FrameEntry struct {
	Key      string          `json:"key"`
	Kind     models.ItemKind `json:"kind"`
	Revealed bool            `json:"revealed"`
	HTML     string          `json:"html"`
}

// handleStream runs one demo view per websocket connection. A single writer
// loop sends snapshots and pings; a reader goroutine applies commands.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	group, err := models.ParseGroupKey(r.URL.Query().Get("group"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("session", uuid.NewString(), "group", group)

	view := chat.NewView(s.timelines, s.chatCfg)
	if err := view.Mount(group); err != nil {
		logger.Error("mount chat view", "error", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "unavailable"),
			time.Now().Add(writeWait))
		return
	}
	defer view.Unmount()

	start := time.Now()
	s.metrics.SessionStarted()
	defer func() { s.metrics.SessionEnded(time.Since(start)) }()
	logger.Info("chat stream opened")

	snaps, cancel := view.Subscribe()
	defer cancel()

	errs := make(chan string, 1)
	done := make(chan struct{})
	go s.readCommands(conn, view, logger, errs, done)

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-s.closing:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			if err := s.writeFrame(conn, s.snapshotFrame(snap)); err != nil {
				logger.Debug("write snapshot", "error", err)
				return
			}
		case msg := <-errs:
			if err := s.writeFrame(conn, Frame{Type: "error", Error: msg}); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readCommands applies client commands until the connection fails. Rejected
// commands are reported through errs without blocking.
func (s *Server) readCommands(conn *websocket.Conn, view *chat.View, logger *slog.Logger, errs chan<- string, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxCommandSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("chat stream read", "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		if err := s.apply(view, cmd); err != nil {
			logger.Debug("command rejected", "type", cmd.Type, "error", err)
			select {
			case errs <- err.Error():
			default:
			}
		}
	}
}

func (s *Server) apply(view *chat.View, cmd Command) error {
	switch cmd.Type {
	case CmdSelect:
		group, err := models.ParseGroupKey(cmd.Group)
		if err != nil {
			return err
		}
		start := time.Now()
		if err := view.SelectGroup(group); err != nil {
			s.metrics.RecordFailure(metrics.OpGroupSelect)
			return err
		}
		s.metrics.RecordTiming(metrics.OpGroupSelect, time.Since(start))
		return nil
	case CmdWheel:
		return view.Wheel(cmd.Delta)
	case CmdDrag:
		return view.Drag(cmd.Delta)
	case CmdLatest:
		return view.ScrollToLatest()
	case CmdMeasure:
		return view.Measure(cmd.Viewport, cmd.Content)
	case CmdImageLoaded:
		return view.ImageLoaded(cmd.Key)
	default:
		return fmt.Errorf("unknown command %q", cmd.Type)
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, f Frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(f)
}

func (s *Server) snapshotFrame(snap chat.Snapshot) Frame {
	entries := make([]FrameEntry, len(snap.Entries))
	for i, e := range snap.Entries {
		entries[i] = FrameEntry{
			Key:      e.InstanceKey,
			Kind:     e.Item.Kind,
			Revealed: e.Revealed,
			HTML:     s.renderEntry(snap.Group, e),
		}
	}
	return Frame{Type: "snapshot", Snapshot: &snap, Entries: entries}
}

// renderEntry renders an entry to HTML. Entries are immutable per group,
// instance key and reveal state, so the markup is cached across streams.
func (s *Server) renderEntry(group models.GroupKey, e chat.Entry) string {
	key := fmt.Sprintf("%s/%s/%t", group, e.InstanceKey, e.Revealed)
	if html, ok := s.entries.Get(key); ok {
		return html
	}
	var b strings.Builder
	if err := components.ChatEntry(e).Render(&b); err != nil {
		s.logger.Warn("render chat entry", "key", e.InstanceKey, "error", err)
		return ""
	}
	html := b.String()
	s.entries.Add(key, html)
	return html
}
