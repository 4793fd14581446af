package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const scopeIDKey contextKey = iota

// getScopeID extracts the journal scope from context.
func getScopeID(ctx context.Context) string {
	v, _ := ctx.Value(scopeIDKey).(string)
	return v
}

// scopeMiddleware extracts a journal scope from the X-Jot-Scope header
// (HTTP) or request metadata (stdio) so front-ends can pin a whole session
// to one journal without repeating scope_id on every call.
func scopeMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var scopeID string

			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				scopeID = extra.Header.Get("X-Jot-Scope")
			}

			// Some notifications have nil params, and GetMeta on a nil
			// underlying value can panic (SDK quirk), so probe carefully.
			if scopeID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if sid, ok := meta["scope_id"].(string); ok {
								scopeID = sid
							}
						}
					}()
				}
			}

			if scopeID != "" {
				ctx = context.WithValue(ctx, scopeIDKey, scopeID)
			}

			return next(ctx, method, req)
		}
	}
}

func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			logger.Debug("mcp traffic", "direction", direction, "stage", "request", "method", method, "params", formatPayload(safeParams(req)))

			result, err := next(ctx, method, req)
			if !strings.HasPrefix(method, "notifications/") {
				logger.Debug("mcp traffic", "direction", direction, "stage", "response", "method", method, "result", formatPayload(result), "error", err)
			}

			return result, err
		}
	}
}

func safeParams(req sdkmcp.Request) any {
	if req == nil {
		return nil
	}
	defer func() { recover() }()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
