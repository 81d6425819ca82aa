package http

import "context"

type contextKey string

const blockIDContextKey contextKey = "block_id"

// ContextWithBlockID injects the block identifier resolved from the request path.
func ContextWithBlockID(ctx context.Context, blockID string) context.Context {
	return context.WithValue(ctx, blockIDContextKey, blockID)
}

// BlockIDFromContext extracts a block identifier previously associated with the context.
func BlockIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(blockIDContextKey).(string)
	return id, ok
}
