package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stevie1mat/flowdsl"
	"github.com/stevie1mat/flowdsl/internal/logging"
	"github.com/stevie1mat/flowdsl/pkg/catalog"
)

// maxBodyBytes caps editor payloads.
const maxBodyBytes = 1 << 20

// Server exposes the compiler and, when configured, the workflow catalog over HTTP.
type Server struct {
	compiler *flowdsl.Compiler
	catalog  *catalog.Manager
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithCompiler sets the compiler used by the stateless endpoints.
func WithCompiler(c *flowdsl.Compiler) Option {
	return func(s *Server) {
		s.compiler = c
	}
}

// WithCatalog mounts the /workflows endpoints backed by m.
func WithCatalog(m *catalog.Manager) Option {
	return func(s *Server) {
		s.catalog = m
	}
}

// WithGatherer serves /metrics from g.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(opts ...Option) (http.Handler, error) {
	s := &Server{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.compiler == nil {
		s.compiler = flowdsl.New(flowdsl.WithLogger(s.logger))
	}

	oapiRouter, err := newRouter()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validateRequests(oapiRouter, s.logger))

		r.Get("/health", s.GetHealth)
		r.Post("/validate", s.ValidateGraph)
		r.Post("/compile", s.CompileGraph)
		r.Post("/plan", s.PlanGraph)
		r.Post("/steps", s.DescribeSteps)
		r.Post("/dsl", s.EmitDSL)
		r.Post("/mermaid", s.RenderMermaid)

		if s.catalog != nil {
			r.Route("/workflows", func(r chi.Router) {
				r.Get("/", s.ListWorkflows)
				r.Post("/", s.CreateWorkflow)
				r.Get("/{id}", s.GetWorkflow)
				r.Put("/{id}", s.UpdateWorkflow)
				r.Delete("/{id}", s.DeleteWorkflow)
				r.Get("/{id}/dsl", s.GetWorkflowDSL)
			})
		}
	})

	return enableCORS(r), nil
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>flowdsl API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
