// Package mcp exposes the pattern registry and the approval workflow as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/domain"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	"github.com/kailas-cloud/regexboard/internal/domain/mode"
	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
	dashboarduc "github.com/kailas-cloud/regexboard/internal/usecase/dashboard"
	patternuc "github.com/kailas-cloud/regexboard/internal/usecase/pattern"
	"github.com/kailas-cloud/regexboard/internal/version"
)

// Server wraps the MCP server with the dashboard operations.
type Server struct {
	server    *mcp.Server
	dashboard *dashboarduc.Service
	patterns  *patternuc.Service
	logger    *zap.Logger
}

// NewServer creates an MCP server and registers its tools.
func NewServer(dashboard *dashboarduc.Service, patterns *patternuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "regexboard",
			Version: version.Version,
		}, nil),
		dashboard: dashboard,
		patterns:  patterns,
		logger:    logger,
	}
	s.server.AddReceivingMiddleware(s.withLogger)
	s.registerTools()
	return s
}

// withLogger puts the server logger into every request context.
func (s *Server) withLogger(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		return next(logpkg.ContextWithLogger(ctx, s.logger), method, req)
	}
}

// Run serves over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// MCP returns the underlying server, e.g. to connect a custom transport.
func (s *Server) MCP() *mcp.Server { return s.server }

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_patterns",
		Description: "List all regex patterns in insertion order",
	}, s.handleListPatterns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_pattern",
		Description: "Add a pattern written as /pattern/flags and recompute matches",
	}, s.handleCreatePattern)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_pattern",
		Description: "Replace the regex of an existing pattern and recompute matches",
	}, s.handleUpdatePattern)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_pattern",
		Description: "Delete a pattern and its matches",
	}, s.handleDeletePattern)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Get the document text and all matches",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_matches",
		Description: "List the pending and approved matches of one pattern",
	}, s.handleListMatches)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "approve_match",
		Description: "Approve the match of a pattern with the given text; unknown matches are ignored",
	}, s.handleApproveMatch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recompute_matches",
		Description: "Rebuild all matches from the stored patterns",
	}, s.handleRecompute)
}

// toolError maps domain errors to the messages users see.
func toolError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPattern):
		return errors.New(domain.InvalidPatternMessage)
	case errors.Is(err, domain.ErrNotFound):
		return errors.New("pattern not found")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (s *Server) handleListPatterns(
	ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, PatternsOutput, error) {
	patterns, err := s.patterns.List(ctx)
	if err != nil {
		return nil, PatternsOutput{}, toolError("list patterns", err)
	}
	return nil, PatternsOutput{Patterns: patternsOut(patterns)}, nil
}

func (s *Server) handleCreatePattern(
	ctx context.Context, _ *mcp.CallToolRequest, in CreatePatternInput,
) (*mcp.CallToolResult, StateOutput, error) {
	st, err := s.dashboard.CreatePattern(ctx, in.Regex)
	if err != nil {
		return nil, StateOutput{}, toolError("create pattern", err)
	}
	return nil, stateOut(st), nil
}

func (s *Server) handleUpdatePattern(
	ctx context.Context, _ *mcp.CallToolRequest, in UpdatePatternInput,
) (*mcp.CallToolResult, StateOutput, error) {
	st, err := s.dashboard.UpdatePattern(ctx, in.ID, in.Regex)
	if err != nil {
		return nil, StateOutput{}, toolError("update pattern", err)
	}
	return nil, stateOut(st), nil
}

func (s *Server) handleDeletePattern(
	ctx context.Context, _ *mcp.CallToolRequest, in PatternIDInput,
) (*mcp.CallToolResult, StateOutput, error) {
	st, err := s.dashboard.DeletePattern(ctx, in.ID)
	if err != nil {
		return nil, StateOutput{}, toolError("delete pattern", err)
	}
	return nil, stateOut(st), nil
}

func (s *Server) handleGetDocument(
	ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	st, err := s.dashboard.State(ctx)
	if err != nil {
		return nil, DocumentOutput{}, toolError("get document", err)
	}
	return nil, documentOut(st.Document), nil
}

func (s *Server) handleListMatches(
	ctx context.Context, _ *mcp.CallToolRequest, in PatternIDInput,
) (*mcp.CallToolResult, ReviewOutput, error) {
	v, err := s.dashboard.View(ctx, mode.Approval, in.ID)
	if err != nil {
		return nil, ReviewOutput{}, toolError("list matches", err)
	}
	if v.Selected == nil {
		return nil, ReviewOutput{}, toolError("list matches", domain.ErrNotFound)
	}
	c := v.Counts()
	return nil, ReviewOutput{
		Pattern:  patternOut(*v.Selected),
		Pending:  matchesOut(v.Pending),
		Approved: matchesOut(v.Approved),
		Counts:   CountsOutput{Pending: c.Pending, Approved: c.Approved},
	}, nil
}

func (s *Server) handleApproveMatch(
	ctx context.Context, _ *mcp.CallToolRequest, in ApproveInput,
) (*mcp.CallToolResult, MatchesOutput, error) {
	matches, err := s.dashboard.Approve(ctx, match.Key{PatternID: in.PatternID, Text: in.MatchedText})
	if err != nil {
		return nil, MatchesOutput{}, toolError("approve match", err)
	}
	s.logger.Debug("approve_match", zap.String("pattern_id", in.PatternID))
	return nil, MatchesOutput{Matches: matchesOut(matches)}, nil
}

func (s *Server) handleRecompute(
	ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, StateOutput, error) {
	st, err := s.dashboard.Recompute(ctx)
	if err != nil {
		return nil, StateOutput{}, toolError("recompute", err)
	}
	return nil, stateOut(st), nil
}
