package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/realyassine/SouqFX/api/response"
	"github.com/realyassine/SouqFX/infrastructure/persistence"
)

func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
