package web

import (
	"BackgroundRemover/internal/app/pipeline"
	"BackgroundRemover/internal/config"
	"BackgroundRemover/internal/metrics"
	"BackgroundRemover/internal/service/export"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Server локальный UI: принимает файл, запускает удаление фона и пушит View по WebSocket.
// Сам ничего не решает, все переходы делает pipeline.Controller.
type Server struct {
	cfg     config.ServerConfig
	ctrl    *pipeline.Controller
	saver   *export.Saver
	metrics *metrics.Metrics
	srv     *http.Server
	hub     *hub
	logger  *zap.SugaredLogger
	running atomic.Bool

	mu         sync.Mutex
	sourceName string // имя исходного файла, нужно только для имени при скачивании
	sourceGen  uint64 // поколение загрузки, к которой относится sourceName
}

func NewServer(cfg config.ServerConfig, ctrl *pipeline.Controller, saver *export.Saver, m *metrics.Metrics, logger *zap.SugaredLogger) *Server {
	if cfg.BindAddr == "" {
		cfg.BindAddr = "127.0.0.1:8080"
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	s := &Server{cfg: cfg, ctrl: ctrl, saver: saver, metrics: m, logger: logger, hub: newHub(logger)}

	s.srv = &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler маршруты UI.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/image", s.handleIngest)
	mux.HandleFunc("POST /api/remove", s.handleRemove)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /api/result", s.handleResult)
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("GET /ws", s.handleWS)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

// Start поднимает HTTP сервер и рассылку изменений. Останавливается по отмене ctx.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	go s.hub.run(ctx, s.ctrl)
	go func() {
		s.logger.Infow("UI server listening", "addr", "http://"+s.srv.Addr)
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
			s.logger.Errorw("UI server stopped with error", "error", err)
		} else {
			s.logger.Infow("UI server stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Stop(context.WithoutCancel(ctx))
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeoutCause(ctx, 5*time.Second, errors.New("ui server shutdown timeout"))
	defer cancel()
	s.hub.closeAll()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warnw("graceful shutdown error", "error", err)
		return s.srv.Close()
	}
	return nil
}

func (s *Server) Addr() string { return s.cfg.BindAddr }

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeView(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, fmt.Sprintf("file is larger than %d bytes", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "multipart field \"file\" is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	// Тип берём тот, что заявил клиент, как это делает браузер для File.type
	snap := s.ctrl.IngestFile(data, header.Header.Get("Content-Type"))
	if snap.State == pipeline.Loaded && snap.Err == nil {
		s.rememberSource(filepath.Base(header.Filename), snap.Generation)
	}
	status := http.StatusOK
	if snap.Err != nil {
		status = http.StatusUnprocessableEntity
	}
	writeView(w, status, snap)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	snap, started := s.ctrl.StartRemoval(r.Context())
	status := http.StatusAccepted
	if !started {
		status = http.StatusConflict
	}
	writeView(w, status, snap)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	writeView(w, http.StatusOK, s.ctrl.Reset())
}

func (s *Server) handleResult(w http.ResponseWriter, _ *http.Request) {
	snap := s.ctrl.Snapshot()
	if snap.State != pipeline.Succeeded || snap.Result == nil {
		http.Error(w, "no result yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", snap.Result.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.saver.FileName(s.currentSourceName())))
	_, _ = w.Write(snap.Result.Data)
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	snap := s.ctrl.Snapshot()
	if snap.State != pipeline.Succeeded || snap.Result == nil {
		http.Error(w, "no result yet", http.StatusNotFound)
		return
	}
	path, err := s.saver.Save(*snap.Result, s.currentSourceName())
	if err != nil {
		s.logger.Errorw("Failed to save result", "error", err)
		http.Error(w, "failed to save result", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

// rememberSource запоминает имя файла. Параллельные загрузки могут вернуться в любом порядке,
// поэтому побеждает загрузка с большим поколением: именно её исходник остался в контроллере.
func (s *Server) rememberSource(name string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.sourceGen {
		return
	}
	s.sourceName = name
	s.sourceGen = gen
}

func (s *Server) currentSourceName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourceName
}

func writeView(w http.ResponseWriter, status int, snap pipeline.Snapshot) {
	writeJSON(w, status, pipeline.Render(snap))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
