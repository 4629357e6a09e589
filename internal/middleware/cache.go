package middleware

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/cache"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/metrics"
)

type cachingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *cachingWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

// CachePublicGET serves public GET responses from the cache and stores fresh
// 200 responses on a miss. Keys are the full request URI, so querystring
// variants cache independently.
func CachePublicGET(store cache.Cache, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if body, err := store.Get(c.Request.Context(), key); err == nil {
			if m != nil {
				m.CacheHits.Inc()
			}
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		} else if !errors.Is(err, cache.ErrMiss) {
			// Redis trouble must not take the public site down.
			c.Next()
			return
		}

		if m != nil {
			m.CacheMisses.Inc()
		}
		writer := &cachingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK && writer.body.Len() > 0 {
			_ = store.Set(c.Request.Context(), key, writer.body.Bytes())
		}
	}
}
