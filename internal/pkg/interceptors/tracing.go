package interceptors

import (
	"context"
	"log/slog"
	"time"

	"github.com/jcmexdev/storefront/internal/pkg/interceptors/constants"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// TraceServerInterceptor copies x-request-id and x-idempotency-key from the
// incoming metadata into the context and logs every unary call.
func TraceServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		requestID := GetMetadataValue(ctx, constants.HeaderXRequestId)
		idempotencyKey := GetMetadataValue(ctx, constants.HeaderXIdempotencyKey)
		newCtx := WithRequestMetadata(ctx, requestID, idempotencyKey)

		start := time.Now()
		resp, err := handler(newCtx, req)

		slog.DebugContext(newCtx, "grpc call",
			"method", info.FullMethod,
			"request_id", requestID,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}
