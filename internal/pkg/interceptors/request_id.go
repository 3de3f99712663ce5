package interceptors

import (
	"context"

	"github.com/jcmexdev/storefront/internal/pkg/interceptors/constants"
	"google.golang.org/grpc/metadata"
)

// RequestID returns the request id stored by the HTTP middleware or the gRPC
// interceptor, or "" when none is present.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok {
		return id
	}
	return GetMetadataValue(ctx, constants.HeaderXRequestId)
}

// IdempotencyKey returns the client supplied idempotency key, or "".
func IdempotencyKey(ctx context.Context) string {
	if key, ok := ctx.Value(constants.ContextKeyIdempotencyKey).(string); ok {
		return key
	}
	return GetMetadataValue(ctx, constants.HeaderXIdempotencyKey)
}

// GetMetadataValue reads key from incoming gRPC metadata.
func GetMetadataValue(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(key); len(ids) > 0 {
			return ids[0]
		}
	}
	return ""
}

// WithRequestMetadata stores the request id and idempotency key on ctx.
func WithRequestMetadata(ctx context.Context, requestID, idempotencyKey string) context.Context {
	ctx = context.WithValue(ctx, constants.ContextKeyRequestID, requestID)
	return context.WithValue(ctx, constants.ContextKeyIdempotencyKey, idempotencyKey)
}
