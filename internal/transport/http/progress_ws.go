package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"trivia-engine/internal/app"
	"trivia-engine/internal/domain"
)

// ProgressStream pushes the progress projection over a websocket so clients
// can render lockout countdowns without polling the REST endpoint. It is
// strictly read-only; no state transition happens here.
type ProgressStream struct {
	service  *app.TriviaService
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewProgressStream(service *app.TriviaService, interval time.Duration) *ProgressStream {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &ProgressStream{
		service:  service,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades the request and streams progress snapshots until the
// client disconnects.
func (s *ProgressStream) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		view, err := s.service.Progress(r.Context(), userID)
		if err != nil {
			log.Printf("ws progress for %s: %v", userID, err)
			return
		}
		if err := conn.WriteJSON(outboundMessage[domain.ProgressView]{Type: "progress", Payload: view}); err != nil {
			return
		}
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
