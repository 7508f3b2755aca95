package status

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"

	"github.com/wheelibin/lume/internal/models"
)

// StreamServer pushes pod frames and transitions to any browser listening
// on /events.
type StreamServer struct {
	logger     *log.Logger
	server     *sse.Server
	httpServer *http.Server
}

type frameEvent struct {
	Mode       string `json:"mode"`
	Colour     string `json:"colour"`
	Brightness int    `json:"brightness"`
}

type transitionEvent struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

func NewStreamServer(logger *log.Logger, addr string) *StreamServer {
	server := sse.New()
	server.AutoReplay = false
	server.CreateStream("status")

	mux := http.NewServeMux()
	mux.HandleFunc("/events", server.ServeHTTP)

	return &StreamServer{
		logger:     logger,
		server:     server,
		httpServer: &http.Server{Addr: addr, Handler: mux},
	}
}

func (s *StreamServer) Start() {
	go func() {
		s.logger.Info("status stream listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status stream server failed", "err", err)
		}
	}()
}

func (s *StreamServer) Close() {
	_ = s.httpServer.Close()
	s.server.Close()
}

func (s *StreamServer) PublishFrame(f models.Frame) {
	data, err := json.Marshal(frameEvent{
		Mode:       string(f.Mode),
		Colour:     f.Colour.String(),
		Brightness: f.Brightness,
	})
	if err != nil {
		s.logger.Error(err)
		return
	}
	s.server.Publish("status", &sse.Event{Event: []byte("frame"), Data: data})
}

func (s *StreamServer) PublishTransition(t models.Transition) {
	data, err := json.Marshal(transitionEvent{From: string(t.From), To: string(t.To), At: t.At})
	if err != nil {
		s.logger.Error(err)
		return
	}
	s.server.Publish("status", &sse.Event{Event: []byte("transition"), Data: data})
}
