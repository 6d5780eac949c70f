package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/ncrp-intake/internal/complaint"
	"github.com/a3tai/ncrp-intake/internal/config"
	"github.com/a3tai/ncrp-intake/internal/descriptions"
	"github.com/a3tai/ncrp-intake/internal/intake"
	"github.com/a3tai/ncrp-intake/internal/pdf"
	"github.com/a3tai/ncrp-intake/internal/store"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	intake    *intake.Service
	files     *pdf.Validator
	paths     *pathGuard
	logger    log.Interface
	mcpServer *server.MCPServer
}

// tool is one registered tool as listed by complaint_server_info.
type tool struct {
	name    string
	summary string
	params  string
}

var tools = []tool{
	{"complaint_process_file", "Extract the fields of an NCRP complaint PDF and store the record", "path (string, required)"},
	{"complaint_validate_file", "Check that a file is a readable PDF", "path (string, required)"},
	{"complaint_list", "List stored complaints, newest first", "none"},
	{"complaint_get", "Show one stored complaint", "id (number, required)"},
	{"complaint_delete", "Delete one stored complaint", "id (number, required)"},
	{"complaint_server_info", "Show server configuration and available tools", "none"},
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, svc *intake.Service, logger log.Interface) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("intake service cannot be nil")
	}
	if logger == nil {
		logger = log.Log
	}
	paths, err := newPathGuard(cfg.PDFDirectory)
	if err != nil {
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		config:    cfg,
		intake:    svc,
		files:     pdf.NewValidator(cfg.MaxFileSize),
		paths:     paths,
		logger:    logger,
		mcpServer: mcpServer,
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	pathArg := mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the PDF file, absolute or relative to the configured directory"),
	)
	idArg := mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Stored complaint id"),
	)

	handlers := map[string]server.ToolHandlerFunc{
		"complaint_process_file":  s.handleProcessFile,
		"complaint_validate_file": s.handleValidateFile,
		"complaint_list":          s.handleList,
		"complaint_get":           s.handleGet,
		"complaint_delete":        s.handleDelete,
		"complaint_server_info":   s.handleServerInfo,
	}
	args := map[string]mcp.ToolOption{
		"complaint_process_file":  pathArg,
		"complaint_validate_file": pathArg,
		"complaint_get":           idArg,
		"complaint_delete":        idArg,
	}

	for _, t := range tools {
		opts := []mcp.ToolOption{mcp.WithDescription(descriptions.GetToolDescription(t.name))}
		if arg, ok := args[t.name]; ok {
			opts = append(opts, arg)
		}
		s.mcpServer.AddTool(mcp.NewTool(t.name, opts...), handlers[t.name])
	}
}

func (s *Server) handleProcessFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err = s.paths.Resolve(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := s.intake.ProcessFile(ctx, path)
	switch out.Status {
	case intake.StatusSuccess:
		text := fmt.Sprintf("Stored complaint %d from %s\n\n", out.Record.ID, path)
		text += formatRecord(out.Record)
		return mcp.NewToolResultText(text), nil
	case intake.StatusDuplicate:
		return mcp.NewToolResultError(out.Message), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("processing %s failed: %s", path, out.Message)), nil
	}
}

func (s *Server) handleValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err = s.paths.Resolve(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.files.ValidateFile(pdf.PDFValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Valid {
		return mcp.NewToolResultText(fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("PDF file %s is valid and readable (%d pages, %d bytes)",
		result.Path, result.Pages, result.Size)), nil
}

func (s *Server) handleList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recs, err := s.intake.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list complaints: %v", err)), nil
	}
	if len(recs) == 0 {
		return mcp.NewToolResultText("No complaints stored"), nil
	}

	text := fmt.Sprintf("%d stored complaint(s), newest first:\n", len(recs))
	for i, r := range recs {
		text += fmt.Sprintf("%d. [%d] %s", i+1, r.ID, r.AckNo)
		if r.Category != "" {
			text += " - " + r.Category
		}
		if r.TotalLoss != "" {
			text += " - " + r.TotalLoss
		}
		text += "\n"
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.intake.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("complaint %d not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read complaint %d: %v", id, err)), nil
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.intake.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete complaint %d: %v", id, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Complaint %d deleted", id)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Default Directory: %s\n", s.paths.root)
	text += fmt.Sprintf("Max File Size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("Database: %s\n", s.config.DBDriver)
	if n, err := s.intake.Count(ctx); err == nil {
		text += fmt.Sprintf("Stored complaints: %d\n", n)
	}

	text += "\nAvailable Tools:\n"
	for _, t := range tools {
		text += fmt.Sprintf("\n- %s\n", t.name)
		text += fmt.Sprintf("  Description: %s\n", t.summary)
		text += fmt.Sprintf("  Parameters: %s\n", t.params)
	}
	return mcp.NewToolResultText(text), nil
}

// requireID reads the id argument, accepting a JSON number or a numeric string.
func requireID(request mcp.CallToolRequest) (int64, error) {
	var (
		id  int64
		err error
	)
	switch v := request.GetArguments()["id"].(type) {
	case float64:
		id = int64(v)
		if float64(id) != v {
			err = fmt.Errorf("id must be a whole number")
		}
	case string:
		id, err = strconv.ParseInt(v, 10, 64)
	case nil:
		return 0, fmt.Errorf("required argument \"id\" not found")
	default:
		err = fmt.Errorf("id must be a number")
	}
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive")
	}
	return id, nil
}

func formatRecord(r complaint.Record) string {
	var b strings.Builder
	for i, v := range r.Values() {
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(&b, "%s: %s\n", complaint.Columns[i+1], v)
	}
	return b.String()
}

// Run serves MCP over stdio until the client disconnects.
func (s *Server) Run(_ context.Context) error {
	s.logger.WithField("dir", s.paths.root).Debug("starting MCP server on stdio")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
