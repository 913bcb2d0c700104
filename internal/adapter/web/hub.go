package web

import (
	"BackgroundRemover/internal/app/pipeline"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
}

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex // gorilla допускает только одного писателя
}

func (c *wsClient) send(v pipeline.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// hub рассылает свежий View всем подключённым вкладкам.
type hub struct {
	logger *zap.SugaredLogger

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

func newHub(logger *zap.SugaredLogger) *hub {
	return &hub{logger: logger, clients: make(map[*wsClient]struct{})}
}

// run слушает изменения контроллера до отмены ctx.
func (h *hub) run(ctx context.Context, ctrl *pipeline.Controller) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ctrl.NotifyCh():
			h.broadcast(pipeline.Render(ctrl.Snapshot()))
		}
	}
}

func (h *hub) broadcast(v pipeline.View) {
	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.send(v); err != nil {
			h.logger.Debugw("WebSocket send failed, dropping client", "remote", c.conn.RemoteAddr().String(), "error", err)
			h.remove(c)
		}
	}
}

func (h *hub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		_ = c.conn.Close()
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*wsClient]struct{})
	h.mu.Unlock()
	for c := range clients {
		_ = c.conn.Close()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnw("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := &wsClient{conn: conn}
	s.hub.add(c)

	// Сразу отдаём текущее состояние
	if err := c.send(pipeline.Render(s.ctrl.Snapshot())); err != nil {
		s.hub.remove(c)
		return
	}

	// Входящие сообщения не ждём; читаем только чтобы заметить закрытие
	go func() {
		defer s.hub.remove(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
