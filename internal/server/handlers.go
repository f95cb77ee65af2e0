package server

import (
	"log/slog"
	"net/http"

	"github.com/san-kum/linsolve/internal/config"
	"github.com/san-kum/linsolve/internal/jacobi"
	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/solver"
	"github.com/san-kum/linsolve/internal/trace"
)

// SystemRequest carries a system to solve. A trace keeps O(n²) bytes of
// narration per sweep, so systems are capped at 10 unknowns and Jacobi at
// 1000 sweeps. Other shape problems are reported by the solvers in the result.
type SystemRequest struct {
	Coefficients linalg.Matrix `json:"coefficients" validate:"required,min=1,max=10,dive,max=10"`
	Constants    linalg.Vector `json:"constants" validate:"required,min=1,max=10"`
}

type JacobiRequest struct {
	SystemRequest
	Tolerance     *float64 `json:"tolerance,omitempty" validate:"omitempty,gt=0"`
	MaxIterations *int     `json:"maxIterations,omitempty" validate:"omitempty,gte=0,lte=1000"`
}

func (r JacobiRequest) options() (float64, int) {
	tol, maxIter := jacobi.DefaultTolerance, jacobi.DefaultMaxIterations
	if r.Tolerance != nil {
		tol = *r.Tolerance
	}
	if r.MaxIterations != nil {
		maxIter = *r.MaxIterations
	}
	return tol, maxIter
}

type DominanceRequest struct {
	Coefficients linalg.Matrix `json:"coefficients" validate:"required,min=1,max=10,dive,max=10"`
}

type DominanceResponse struct {
	IsDiagonallyDominant bool `json:"isDiagonallyDominant"`
}

type PresetResponse struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	System      linalg.System `json:"system"`
}

func (s *Server) handleDirect(w http.ResponseWriter, r *http.Request) {
	var req SystemRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s.solve(w, r, solver.Request{
		Method: trace.MethodDirect,
		System: linalg.System{Coefficients: req.Coefficients, Constants: req.Constants},
	})
}

func (s *Server) handleJacobi(w http.ResponseWriter, r *http.Request) {
	var req JacobiRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tol, maxIter := req.options()
	s.solve(w, r, solver.Request{
		Method:        trace.MethodJacobi,
		System:        linalg.System{Coefficients: req.Coefficients, Constants: req.Constants},
		Tolerance:     tol,
		MaxIterations: maxIter,
	})
}

// solve runs req and answers 200 with the result, or 422 with the failed
// result when the solver rejected the input.
func (s *Server) solve(w http.ResponseWriter, r *http.Request, req solver.Request) {
	res, err := s.registry.Solve(r.Context(), req)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	attrs := []any{
		slog.String("method", string(req.Method)),
		slog.Int("size", req.System.Size()),
		slog.Bool("success", res.Success),
	}
	if res.IterationCount != nil {
		attrs = append(attrs, slog.Int("iterations", *res.IterationCount), slog.Bool("converged", *res.Converged))
	}
	s.logger.Debug("solved system", attrs...)

	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, res)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req SystemRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, solver.ValidateJacobiInput(req.Coefficients, req.Constants))
}

func (s *Server) handleDominance(w http.ResponseWriter, r *http.Request) {
	var req DominanceRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, DominanceResponse{
		IsDiagonallyDominant: solver.CheckDiagonalDominance(req.Coefficients),
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req JacobiRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tol, maxIter := req.options()
	sys := linalg.System{Coefficients: req.Coefficients, Constants: req.Constants}
	c, err := s.registry.Compare(r.Context(), sys, tol, maxIter)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	names := config.ListPresets()
	out := make([]PresetResponse, 0, len(names))
	for _, name := range names {
		sys, _ := config.GetPreset(name)
		out = append(out, PresetResponse{
			Name:        name,
			Description: config.Presets[name].Description,
			System:      sys,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.registry.ListMethods())
}
