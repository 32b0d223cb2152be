package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stevie1mat/flowdsl"
	"github.com/stevie1mat/flowdsl/internal/compiler"
	"github.com/stevie1mat/flowdsl/internal/logging"
	mermaid "github.com/stevie1mat/flowdsl/internal/presentation/graph"
	"github.com/stevie1mat/flowdsl/pkg/catalog"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

const workflowsURI = "flowdsl://workflows"

// StepsResponse lists the human-readable steps of a workflow.
type StepsResponse struct {
	Steps []string `json:"steps" jsonschema_description:"One line per node in execution order"`
}

// Server wraps the compiler and exposes it as an MCP Server.
type Server struct {
	compiler  *flowdsl.Compiler
	catalog   *catalog.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithCatalog exposes stored workflows as a resource.
func WithCatalog(m *catalog.Manager) Option {
	return func(s *Server) {
		s.catalog = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(c *flowdsl.Compiler, opts ...Option) *Server {
	s := &Server{
		compiler:  c,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("flowdsl-mcp", flowdsl.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.compiler == nil {
		s.compiler = flowdsl.New(flowdsl.WithLogger(s.logger))
	}
	s.registerTools()
	if s.catalog != nil {
		s.registerResources()
	}
	return s
}

// MCPServer returns the underlying server, for custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
// baseURL is the externally visible address clients post messages to.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	if baseURL == "" {
		baseURL = "http://localhost" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func graphArg() mcp.ToolOption {
	return mcp.WithString("graph",
		mcp.Required(),
		mcp.Description(`Editor payload as JSON: {"nodes":[{"id","type","data"}],"edges":[{"source","target"}]}`),
	)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("validate_workflow",
		mcp.WithDescription("Check a workflow graph for structural errors and advisory warnings."),
		graphArg(),
		mcp.WithOutputSchema[domain.ValidationResult](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("compile_workflow",
		mcp.WithDescription("Validate, order and compile a workflow graph into DSL text, steps and a plan."),
		graphArg(),
		mcp.WithOutputSchema[domain.Compilation](),
	), mcp.NewStructuredToolHandler(s.handleCompile))

	s.mcpServer.AddTool(mcp.NewTool("plan_workflow",
		mcp.WithDescription("Estimate step count, duration and complexity of a workflow."),
		graphArg(),
		mcp.WithOutputSchema[domain.ExecutionPlan](),
	), mcp.NewStructuredToolHandler(s.handlePlan))

	s.mcpServer.AddTool(mcp.NewTool("describe_steps",
		mcp.WithDescription("Describe each step of a workflow in plain language."),
		graphArg(),
		mcp.WithOutputSchema[StepsResponse](),
	), mcp.NewStructuredToolHandler(s.handleSteps))

	s.mcpServer.AddTool(mcp.NewTool("render_mermaid",
		mcp.WithDescription("Render a workflow graph as a Mermaid flowchart, highlighting validation problems."),
		graphArg(),
	), s.handleMermaid)
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ValidationResult, error) {
	g, err := graphFromArgs(args)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return s.compiler.Validate(ctx, g), nil
}

func (s *Server) handleCompile(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Compilation, error) {
	g, err := graphFromArgs(args)
	if err != nil {
		return domain.Compilation{}, err
	}

	out, err := s.compiler.Compile(ctx, g)
	if err != nil {
		s.logger.Debug("MCP compile rejected", "err", err)
		return domain.Compilation{}, err
	}
	return *out, nil
}

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ExecutionPlan, error) {
	out, err := s.handleCompile(ctx, request, args)
	if err != nil {
		return domain.ExecutionPlan{}, err
	}
	return out.Plan, nil
}

func (s *Server) handleSteps(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepsResponse, error) {
	out, err := s.handleCompile(ctx, request, args)
	if err != nil {
		return StepsResponse{}, err
	}
	return StepsResponse{Steps: out.Steps}, nil
}

func (s *Server) handleMermaid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := graphFromArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := s.compiler.Validate(ctx, g)
	return mcp.NewToolResultText(mermaid.GenerateMermaid(g, mermaid.OverlayFromResult(g, res))), nil
}

// graphFromArgs accepts the graph as a JSON string or, from lenient clients, as an object.
func graphFromArgs(args map[string]interface{}) (domain.Graph, error) {
	var raw []byte
	switch v := args["graph"].(type) {
	case string:
		raw = []byte(v)
	case map[string]interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return domain.Graph{}, fmt.Errorf("invalid graph argument: %w", err)
		}
		raw = b
	case nil:
		return domain.Graph{}, errors.New("missing required argument: graph")
	default:
		return domain.Graph{}, fmt.Errorf("graph must be a JSON string, got %T", v)
	}
	return compiler.ParseGraph(raw, compiler.FormatJSON)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(workflowsURI, "Stored Workflows",
		mcp.WithResourceDescription("All workflow definitions in the catalog, newest first."),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		defs, err := s.catalog.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list workflows: %w", err)
		}
		data, err := json.Marshal(defs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode workflows: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      workflowsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
