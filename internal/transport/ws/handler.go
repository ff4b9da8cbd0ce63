package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"realitycheck/internal/logger"
	"realitycheck/internal/model"
	"realitycheck/internal/service"
	"realitycheck/internal/transport/rest/middleware"
	"sync/atomic"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the REST routes only
	},
}

var errBusy = kerrors.New(429, service.ReasonRateLimited, "An analysis is already running on this connection.")

// Handler serves analysis requests over WebSocket
type Handler struct {
	analysisSvc *service.AnalysisService
}

// NewHandler creates a new WebSocket handler
func NewHandler(analysisSvc *service.AnalysisService) *Handler {
	return &Handler{analysisSvc: analysisSvc}
}

// session is one connected client. Requests run one at a time on a worker
// goroutine so the read loop keeps answering pings during slow model calls.
// busy is set by the read loop when it hands over a request and cleared by
// the worker before it sends the final reply, so jobs never holds more than
// one request.
type session struct {
	caller service.Caller
	send   chan []byte
	jobs   chan model.AnalyzeRequest
	busy   atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
}

// AnalyzeWS handles GET /v1/ws/analyze
func (h *Handler) AnalyzeWS(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFrom(r)

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warnf("WebSocket upgrade error: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		caller: caller,
		send:   make(chan []byte, 16),
		jobs:   make(chan model.AnalyzeRequest, 1),
		ctx:    ctx,
		cancel: cancel,
	}

	logger.Log.Infof("WebSocket client %s connected", caller.IP)

	go h.worker(s)
	go h.writePump(wsConn, s)
	go h.readPump(wsConn, s)
}

func (s *session) enqueue(msg []byte) {
	select {
	case s.send <- msg:
	case <-s.ctx.Done():
	}
}

func (h *Handler) worker(s *session) {
	for req := range s.jobs {
		s.enqueue(newMessage(MsgAnalysisStarted, map[string]string{"product": req.Product}))

		result, err := h.analysisSvc.Analyze(s.ctx, s.caller, req.Product, req.Options)
		s.busy.Store(false)
		if err != nil {
			s.enqueue(errorMessage(err))
			continue
		}
		s.enqueue(newMessage(MsgAnalysisResult, result))
	}
}

func (h *Handler) readPump(wsConn *websocket.Conn, s *session) {
	defer func() {
		s.cancel()
		close(s.jobs)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warnf("WebSocket error: %v", err)
			}
			break
		}

		var req model.AnalyzeRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.enqueue(errorMessage(kerrors.BadRequest(service.ReasonInvalidInput, "invalid request body")))
			continue
		}

		if !s.busy.CompareAndSwap(false, true) {
			s.enqueue(errorMessage(errBusy))
			continue
		}
		s.jobs <- req
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, s *session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.cancel()
		wsConn.Close()
	}()

	for {
		select {
		case message := <-s.send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.ctx.Done():
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			wsConn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
