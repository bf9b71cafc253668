// Package debugserver 提供只读的调试 HTTP 接口，
// 在游戏循环之外查看当前换装快照。
package debugserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/decker502/dressup/pkg/systems"
)

// SnapshotFunc 返回最近一次发布的快照，尚未发布时返回 nil
// 会在 HTTP goroutine 中调用，必须并发安全
type SnapshotFunc func() *systems.OutfitSnapshot

// Server 调试服务器
type Server struct {
	addr     string
	snapshot SnapshotFunc
	router   *chi.Mux
	srv      *http.Server
}

// New 创建调试服务器
func New(addr string, snapshot SnapshotFunc) *Server {
	s := &Server{addr: addr, snapshot: snapshot}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/snapshot/wearables/{id}", s.handleWearable)

	s.router = r
	return s
}

// Handler 返回路由，测试时直接挂到 httptest.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleWearable(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "not ready"})
		return
	}
	id := chi.URLParam(r, "id")
	ws, ok := snap.Wearable(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown wearable " + id})
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

// Run 监听直到 ctx 取消
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[DebugServer] listening on %s", s.addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Printf("[DebugServer] stopped")
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[DebugServer] encode response: %v", err)
	}
}
