package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/oapi-codegen/runtime"
	"github.com/stevie1mat/flowdsl"
	"github.com/stevie1mat/flowdsl/internal/compiler"
	mermaid "github.com/stevie1mat/flowdsl/internal/presentation/graph"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type invalidGraphResponse struct {
	Error      string                  `json:"error"`
	Validation domain.ValidationResult `json:"validation"`
}

type stepsResponse struct {
	Steps []string `json:"steps"`
}

type workflowInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Credits     int                 `json:"credits"`
	CoverImage  string              `json:"coverImage"`
	Nodes       []compiler.ViewNode `json:"nodes"`
	Edges       []compiler.ViewEdge `json:"edges"`
}

type savedWorkflow struct {
	Workflow   *domain.Definition      `json:"workflow"`
	Validation domain.ValidationResult `json:"validation"`
}

type workflowList struct {
	Workflows []*domain.Definition `json:"workflows"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": flowdsl.Version,
	})
}

// ValidateGraph handles POST /validate. Invalid graphs still answer 200.
func (s *Server) ValidateGraph(w http.ResponseWriter, r *http.Request) {
	g, ok := s.readGraph(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.compiler.Validate(r.Context(), g))
}

// CompileGraph handles POST /compile.
func (s *Server) CompileGraph(w http.ResponseWriter, r *http.Request) {
	if out, ok := s.compile(w, r); ok {
		writeJSON(w, http.StatusOK, out)
	}
}

// PlanGraph handles POST /plan.
func (s *Server) PlanGraph(w http.ResponseWriter, r *http.Request) {
	if out, ok := s.compile(w, r); ok {
		writeJSON(w, http.StatusOK, out.Plan)
	}
}

// DescribeSteps handles POST /steps.
func (s *Server) DescribeSteps(w http.ResponseWriter, r *http.Request) {
	if out, ok := s.compile(w, r); ok {
		writeJSON(w, http.StatusOK, stepsResponse{Steps: out.Steps})
	}
}

// EmitDSL handles POST /dsl.
func (s *Server) EmitDSL(w http.ResponseWriter, r *http.Request) {
	if out, ok := s.compile(w, r); ok {
		writeText(w, out.DSL)
	}
}

// RenderMermaid handles POST /mermaid. Invalid graphs are rendered with their problems highlighted.
func (s *Server) RenderMermaid(w http.ResponseWriter, r *http.Request) {
	g, ok := s.readGraph(w, r)
	if !ok {
		return
	}
	res := s.compiler.Validate(r.Context(), g)
	writeText(w, mermaid.GenerateMermaid(g, mermaid.OverlayFromResult(g, res)))
}

// ListWorkflows handles GET /workflows.
func (s *Server) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	defs, err := s.catalog.List(r.Context())
	if err != nil {
		s.fail(w, "ListWorkflows", err)
		return
	}
	writeJSON(w, http.StatusOK, workflowList{Workflows: defs})
}

// CreateWorkflow handles POST /workflows.
func (s *Server) CreateWorkflow(w http.ResponseWriter, r *http.Request) {
	def, ok := s.readWorkflow(w, r)
	if !ok {
		return
	}

	saved, res, err := s.catalog.Create(r.Context(), def)
	if err != nil {
		s.fail(w, "CreateWorkflow", err)
		return
	}
	writeJSON(w, http.StatusCreated, savedWorkflow{Workflow: saved, Validation: res})
}

// GetWorkflow handles GET /workflows/{id}.
func (s *Server) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	id, ok := workflowID(w, r)
	if !ok {
		return
	}

	def, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.fail(w, "GetWorkflow", err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// UpdateWorkflow handles PUT /workflows/{id}.
func (s *Server) UpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	id, ok := workflowID(w, r)
	if !ok {
		return
	}
	def, ok := s.readWorkflow(w, r)
	if !ok {
		return
	}

	saved, res, err := s.catalog.Update(r.Context(), id, def)
	if err != nil {
		s.fail(w, "UpdateWorkflow", err)
		return
	}
	writeJSON(w, http.StatusOK, savedWorkflow{Workflow: saved, Validation: res})
}

// DeleteWorkflow handles DELETE /workflows/{id}.
func (s *Server) DeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	id, ok := workflowID(w, r)
	if !ok {
		return
	}

	if err := s.catalog.Delete(r.Context(), id); err != nil {
		s.fail(w, "DeleteWorkflow", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetWorkflowDSL handles GET /workflows/{id}/dsl?format=text|json.
func (s *Server) GetWorkflowDSL(w http.ResponseWriter, r *http.Request) {
	id, ok := workflowID(w, r)
	if !ok {
		return
	}

	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	_, out, err := s.catalog.Compile(r.Context(), id)
	if err != nil {
		s.failCompile(w, "GetWorkflowDSL", out, err)
		return
	}

	if format != nil && *format == "json" {
		writeJSON(w, http.StatusOK, out)
		return
	}
	writeText(w, out.DSL)
}

// -- Helpers --

func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (domain.Graph, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return domain.Graph{}, false
	}

	g, err := compiler.ParseGraph(body, compiler.FormatJSON)
	if err != nil {
		s.logger.Warn("Invalid graph payload", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusBadRequest, err)
		return domain.Graph{}, false
	}
	return g, true
}

func (s *Server) readWorkflow(w http.ResponseWriter, r *http.Request) (domain.Definition, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return domain.Definition{}, false
	}

	var in workflowInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid workflow body: %w", err))
		return domain.Definition{}, false
	}

	view := compiler.View{Name: in.Name, Nodes: in.Nodes, Edges: in.Edges}
	g, err := view.Graph()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return domain.Definition{}, false
	}

	return domain.Definition{
		Name:        in.Name,
		Description: in.Description,
		Credits:     in.Credits,
		CoverImage:  in.CoverImage,
		Nodes:       g.Nodes,
		Edges:       g.Edges,
	}, true
}

func (s *Server) compile(w http.ResponseWriter, r *http.Request) (*domain.Compilation, bool) {
	g, ok := s.readGraph(w, r)
	if !ok {
		return nil, false
	}

	out, err := s.compiler.Compile(r.Context(), g)
	if err != nil {
		s.failCompile(w, r.URL.Path, out, err)
		return nil, false
	}
	return out, true
}

func (s *Server) failCompile(w http.ResponseWriter, op string, out *domain.Compilation, err error) {
	var invalid *domain.InvalidGraphError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, invalidGraphResponse{
			Error:      err.Error(),
			Validation: invalid.Result,
		})
	case errors.Is(err, domain.ErrInvalidGraph) && out != nil:
		writeJSON(w, http.StatusUnprocessableEntity, invalidGraphResponse{
			Error:      err.Error(),
			Validation: out.Validation,
		})
	default:
		s.fail(w, op, err)
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrWorkflowNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	s.logger.Error(op+" failed", "err", err)
	writeError(w, http.StatusInternalServerError, err)
}

func workflowID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter id: %w", err))
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, s)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
