package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader   = "Idempotency-Key"
	replayedHeader      = "Idempotent-Replayed"
	idempotencyTTL      = 24 * time.Hour
	idempotencyInflight = 30 * time.Second
)

// storedResponse is a completed response kept for replay.
type storedResponse struct {
	Status      int             `json:"status"`
	ContentType string          `json:"content_type"`
	Body        json.RawMessage `json:"body"`
}

// captureWriter tees the response body so it can be stored after the
// handler returns.
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// idempotencyStore keeps replayable responses and in-flight markers.
type idempotencyStore struct {
	client *redis.Client
}

func (s idempotencyStore) lookup(ctx context.Context, key string) (*storedResponse, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp storedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s idempotencyStore) claim(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, key+":inflight", "1", idempotencyInflight).Result()
}

func (s idempotencyStore) release(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key+":inflight").Err(); err != nil {
		log.Printf("idempotency: failed to clear in-flight marker: %v", err)
	}
}

func (s idempotencyStore) save(ctx context.Context, key string, resp storedResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("idempotency: failed to encode response: %v", err)
		return
	}
	if err := s.client.Set(ctx, key, data, idempotencyTTL).Err(); err != nil {
		log.Printf("idempotency: failed to store response: %v", err)
	}
}

// IdempotencyMiddleware replays the first successful response to a POST
// carrying an Idempotency-Key. Keys are scoped to the caller's credential and
// route. A retry that arrives while the first attempt is still running gets
// 409. Without a Redis client, or when Redis fails, requests pass through.
func IdempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(idempotencyHeader)
		if redisClient == nil || key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		store := idempotencyStore{client: redisClient}
		ctx := c.Request.Context()
		scoped := idempotencyKey(c.GetHeader("Authorization"), c.FullPath(), key)

		stored, err := store.lookup(ctx, scoped)
		if err != nil {
			log.Printf("idempotency: lookup failed, serving without replay: %v", err)
			c.Next()
			return
		}
		if stored != nil {
			c.Header(replayedHeader, "true")
			c.Data(stored.Status, stored.ContentType, stored.Body)
			c.Abort()
			return
		}

		claimed, err := store.claim(ctx, scoped)
		if err != nil {
			log.Printf("idempotency: claim failed, serving without replay: %v", err)
			c.Next()
			return
		}
		if !claimed {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "request with this Idempotency-Key is already in progress"})
			return
		}
		defer store.release(context.WithoutCancel(ctx), scoped)

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if status := w.Status(); status >= 200 && status < 300 {
			store.save(context.WithoutCancel(ctx), scoped, storedResponse{
				Status:      status,
				ContentType: w.Header().Get("Content-Type"),
				Body:        w.body.Bytes(),
			})
		}
	}
}

func idempotencyKey(authorization, route, key string) string {
	sum := sha256.Sum256([]byte(authorization + "\x00" + route + "\x00" + key))
	return "idempotency:" + hex.EncodeToString(sum[:])
}
