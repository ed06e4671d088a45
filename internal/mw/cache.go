package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

type teeWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache serves repeated GET requests from an in-memory cache keyed by the
// full request URI. Room inventories only change when a scrape runs, so a
// short TTL removes nearly all database traffic.
func Cache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if hit, found := store.Get(key); found {
			resp := hit.(cachedResponse)
			c.Data(resp.status, resp.contentType, resp.body)
			c.Abort()
			return
		}

		tee := &teeWriter{ResponseWriter: c.Writer, buf: bytes.NewBuffer(nil)}
		c.Writer = tee

		c.Next()

		if status := tee.Status(); status >= 200 && status < 300 {
			store.Set(key, cachedResponse{
				status:      status,
				contentType: tee.Header().Get("Content-Type"),
				body:        tee.buf.Bytes(),
			}, ttl)
		}
	}
}
