package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/postboard/internal/cache"
	"github.com/d60-Lab/postboard/pkg/logger"
	"github.com/d60-Lab/postboard/pkg/pagination"
)

// bodyWriter 在写给客户端的同时保留一份响应体
type bodyWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCacheOptions 整页缓存参数
type PageCacheOptions struct {
	Key        string
	TTL        time.Duration
	VaryByPage bool
}

func (o PageCacheOptions) key(c *gin.Context) string {
	if !o.VaryByPage {
		return o.Key
	}
	return o.Key + ":page=" + strconv.Itoa(pagination.ParseNumber(c.Query("page")))
}

// CachePage 缓存 GET 的 200 响应；写操作不会使其失效，最多陈旧一个 TTL
func CachePage(store cache.Store, opts PageCacheOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := opts.key(c)

		if raw, err := store.Get(ctx, key); err == nil {
			var entry cache.Entry
			if err := json.Unmarshal(raw, &entry); err == nil {
				c.Header("X-Cache", "HIT")
				c.Data(entry.Status, entry.ContentType, entry.Body)
				c.Abort()
				return
			}
			logger.Warn("drop corrupt cache entry", zap.String("key", key))
		} else if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}

		w := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Header("X-Cache", "MISS")
		c.Next()
		c.Writer = w.ResponseWriter

		if w.Status() != http.StatusOK || c.Request.Method != http.MethodGet {
			return
		}
		raw, err := json.Marshal(cache.Entry{
			Status:      http.StatusOK,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.buf.Bytes(),
			StoredAt:    time.Now(),
		})
		if err != nil {
			return
		}
		if err := store.Set(ctx, key, raw, opts.TTL); err != nil {
			logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
}
