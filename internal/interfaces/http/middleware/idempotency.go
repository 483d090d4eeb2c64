package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"tripcover.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the in-progress marker is held
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed response is replayed
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a request with
// the same Idempotency-Key is submitted twice by the same principal
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		principalID, _ := GetPrincipalID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", principalID, key)
		ctx := c.Request.Context()

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			// Redis being down must not block the request path.
			c.Next()
			return
		}

		if !acquired {
			val, err := redisGet(ctx, storageKey)
			if err == nil && val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"code":    "ERR_IDEMPOTENCY_CONFLICT",
					"message": "Request already in progress",
				})
				return
			}
			var cached cachedResponse
			if err == nil && json.Unmarshal([]byte(val), &cached) == nil {
				c.Data(cached.Status, "application/json", []byte(cached.Body))
				c.Abort()
				return
			}
			// Marker expired or unreadable; fall through and reprocess.
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			// Do not pin server failures; let the client retry.
			redisDel(ctx, storageKey)
			return
		}

		payload, err := json.Marshal(cachedResponse{Status: status, Body: recorder.body.String()})
		if err != nil {
			redisDel(ctx, storageKey)
			return
		}
		redisSet(ctx, storageKey, string(payload), RetentionDuration)
	}
}
