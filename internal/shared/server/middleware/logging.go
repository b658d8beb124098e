package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cvscore-backend/internal/shared/telemetry"
)

// Context keys handlers set so the request log line can correlate records.
const (
	DocumentIDKey = "documentId"
	AnalysisIDKey = "analysisId"
	BatchSizeKey  = "batchSize"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		userID, _ := c.Get(userIDKey)
		isGuest, _ := c.Get(isGuestKey)
		documentID, _ := c.Get(DocumentIDKey)
		analysisID, _ := c.Get(AnalysisIDKey)
		batchSize, _ := c.Get(BatchSizeKey)

		fields := map[string]any{
			"request_id":  reqID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     userID,
			"document_id": documentID,
			"analysis_id": analysisID,
			"is_guest":    isGuest,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if batchSize != nil {
			fields["batch_size"] = batchSize
		}
		telemetry.Info("request.complete", fields)
	}
}
