// Package mcpdocs exposes the documents of a docs.Handler as read-only
// MCP (Model Context Protocol) tools.
package mcpdocs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/apidocs/docs"
	"github.com/vitalvas/apidocs/oas3"
	"github.com/vitalvas/apidocs/swagger"
)

const instructions = `Read-only API documentation server.

Call list_categories first to discover the documented categories, then
get_category for the operations and models of one category. get_openapi
returns the whole API as one OpenAPI 3 document.`

// Config configures a Server.
type Config struct {
	// Name is the implementation name reported to clients (default: "apidocs").
	Name string

	// Version is the implementation version (default: "dev").
	Version string

	// Logger receives tool errors. Nil means slog.Default().
	Logger *slog.Logger
}

// Server serves the documentation tools.
type Server struct {
	docs   *docs.Handler
	server *mcp.Server
	logger *slog.Logger
}

// NewServer creates a Server backed by h. The definition is built by h on
// the first tool call that needs it.
func NewServer(h *docs.Handler, cfg Config) *Server {
	if cfg.Name == "" {
		cfg.Name = "apidocs"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		docs:   h,
		logger: logger,
		server: mcp.NewServer(
			&mcp.Implementation{Name: cfg.Name, Version: cfg.Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server, for use with transports
// other than stdio.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// Run serves over stdio until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the documented API categories with their document paths and descriptions. Also returns the API version and base path.",
	}, s.handleListCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_category",
		Description: "Get the Swagger 1.2 API declaration of one category: its paths, operations, parameters, response messages and models. Use list_categories to find category names.",
	}, s.handleGetCategory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_openapi",
		Description: "Get the whole API as a single OpenAPI 3.0 document.",
	}, s.handleGetOpenAPI)
}

type category struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

type listCategoriesInput struct{}

type listCategoriesOutput struct {
	APIVersion string     `json:"api_version"`
	BasePath   string     `json:"base_path,omitempty"`
	Categories []category `json:"categories"`
}

func (s *Server) handleListCategories(_ context.Context, _ *mcp.CallToolRequest, _ listCategoriesInput) (*mcp.CallToolResult, listCategoriesOutput, error) {
	def, err := s.docs.Definition()
	if err != nil {
		return s.errResult("list_categories", err), listCategoriesOutput{}, nil
	}

	out := listCategoriesOutput{
		APIVersion: def.EffectiveVersion(),
		BasePath:   def.BasePath,
		Categories: make([]category, 0),
	}
	for _, name := range def.Categories() {
		c := category{Name: name, Path: swagger.CategoryPath(name)}
		for _, res := range def.ResourcesIn(name) {
			if res.Description != "" {
				c.Description = res.Description
				break
			}
		}
		out.Categories = append(out.Categories, c)
	}
	return nil, out, nil
}

type documentInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or yaml"`
}

type getCategoryInput struct {
	Category string `json:"category" jsonschema:"Category name as returned by list_categories"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: json (default) or yaml"`
}

func (s *Server) handleGetCategory(_ context.Context, _ *mcp.CallToolRequest, input getCategoryInput) (*mcp.CallToolResult, any, error) {
	if input.Category == "" {
		return s.errResult("get_category", errors.New("category is required")), nil, nil
	}

	decl, err := s.docs.Detail(input.Category)
	if err != nil {
		return s.errResult("get_category", err), nil, nil
	}

	return s.document("get_category", decl, input.Format), nil, nil
}

func (s *Server) handleGetOpenAPI(_ context.Context, _ *mcp.CallToolRequest, input documentInput) (*mcp.CallToolResult, any, error) {
	def, err := s.docs.Definition()
	if err != nil {
		return s.errResult("get_openapi", err), nil, nil
	}

	doc, err := oas3.Translate(def)
	if err != nil {
		return s.errResult("get_openapi", err), nil, nil
	}

	var data []byte
	switch input.Format {
	case "", "json":
		data, err = json.MarshalIndent(doc, "", "  ")
	case "yaml":
		data, err = oas3.MarshalYAML(doc)
	default:
		err = fmt.Errorf("unsupported format %q", input.Format)
	}
	if err != nil {
		return s.errResult("get_openapi", err), nil, nil
	}

	return textResult(data), nil, nil
}

// document renders a Swagger document as a text result in the requested
// format.
func (s *Server) document(tool string, v any, format string) *mcp.CallToolResult {
	var (
		data []byte
		err  error
	)

	switch format {
	case "", "json":
		data, err = json.MarshalIndent(v, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(v)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return s.errResult(tool, err)
	}

	return textResult(data)
}

func textResult(data []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(data)}}}
}

func (s *Server) errResult(tool string, err error) *mcp.CallToolResult {
	if !errors.Is(err, swagger.ErrUnknownCategory) {
		s.logger.Warn("mcp tool failed", slog.String("tool", tool), slog.Any("error", err))
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
