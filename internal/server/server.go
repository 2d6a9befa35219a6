// Package server exposes the placement engine to the scene/UI layer
// over HTTP plus a websocket channel for live pointer feedback.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/EVAnunit1307/citysync/pkg/batch"
	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/controller"
	"github.com/EVAnunit1307/citysync/pkg/geo"
	"github.com/EVAnunit1307/citysync/pkg/registry"
	"github.com/EVAnunit1307/citysync/pkg/site"
)

// Server is the local dev server for interactive placement.
type Server struct {
	port   int
	site   *site.Config
	reg    registry.Registry
	logger *log.Logger

	// The engine is synchronous; input events are serialized here.
	mu   sync.Mutex
	ctrl *controller.Controller
}

// New creates a server over a loaded site config and registry.
func New(cfg *site.Config, reg registry.Registry, port int, logger *log.Logger) *Server {
	return &Server{
		port:   port,
		site:   cfg,
		reg:    reg,
		logger: logger,
		ctrl:   controller.New(cfg, reg, logger),
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/site", s.handleSite)
	mux.HandleFunc("GET /api/buildings", s.handleBuildings)
	mux.HandleFunc("DELETE /api/buildings/{id}", s.handleDeleteBuilding)
	mux.HandleFunc("POST /api/mode", s.handleMode)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("POST /api/click", s.handleClick)
	mux.HandleFunc("GET /ws/pointer", s.handlePointerSocket)

	return mux
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	mux := s.routes()

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("citysync server starting", "addr", "http://localhost"+addr, "site", s.site.Name)

	return http.ListenAndServe(addr, mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleSite(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.site)
}

func (s *Server) handleBuildings(w http.ResponseWriter, _ *http.Request) {
	all, err := s.reg.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"buildings": all, "count": len(all)})
}

func (s *Server) handleDeleteBuilding(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.reg.Remove(id); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// modeRequest arms or cancels a placement mode.
type modeRequest struct {
	Mode  string        `json:"mode"`            // "idle", "single", "batch"
	Type  string        `json:"type,omitempty"`  // single mode: building type
	Batch *batch.Config `json:"batch,omitempty"` // batch mode: subdivision config
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding mode request: %w", err))
		return
	}

	mode, err := controller.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch mode {
	case controller.ModeIdle:
		s.ctrl.Cancel()
	case controller.ModeSingle:
		t, err := building.ParseType(req.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.ctrl.EnterSingle(t)
	case controller.ModeBatch:
		if req.Batch == nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("batch mode needs a batch config"))
			return
		}
		s.ctrl.EnterBatch(*req.Batch)
	}
	writeJSON(w, http.StatusOK, map[string]string{"mode": s.ctrl.Mode().String()})
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var x, z float64
	if _, err := fmt.Sscan(q.Get("x"), &x); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad x: %w", err))
		return
	}
	if _, err := fmt.Sscan(q.Get("z"), &z); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad z: %w", err))
		return
	}

	s.mu.Lock()
	res, active := s.ctrl.PointerMove(geo.Pt(x, z))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"active": active, "result": res})
}

// clickRequest is a committed pointer click at a projected ground point.
type clickRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding click: %w", err))
		return
	}

	s.mu.Lock()
	out, err := s.ctrl.Click(geo.Pt3(req.X, req.Y, req.Z))
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
