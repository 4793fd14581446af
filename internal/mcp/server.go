package mcp

import (
	"context"
	"log/slog"

	"github.com/jotkit/jot/internal/domain/entry"
	"github.com/jotkit/jot/internal/domain/search"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// EntryService defines entry operations needed by MCP.
type EntryService interface {
	Create(ctx context.Context, req entry.CreateRequest) (*entry.Entry, error)
	Get(ctx context.Context, id string) (*entry.Entry, error)
	Update(ctx context.Context, req entry.UpdateRequest) (*entry.Entry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts entry.ListOptions) ([]entry.Entry, error)
	SetFavorite(ctx context.Context, id string, favorite bool) (*entry.Entry, error)
	SetArchived(ctx context.Context, id string, archived bool) (*entry.Entry, error)
}

// SearchService defines search operations needed by MCP.
type SearchService interface {
	Search(ctx context.Context, q search.StructuredQuery, scopeID string, limit, offset int) ([]search.MatchRecord, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Entries EntryService
	Search  SearchService
}

// Config contains server configuration.
type Config struct {
	Services Services
	// DefaultLimit caps search_entries results when the request doesn't
	// specify a limit.
	DefaultLimit int
	Logger       *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "jot",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(scopeMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.DefaultLimit)

	return server
}
