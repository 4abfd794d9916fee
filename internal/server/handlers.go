package server

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"lyrics-fetcher/internal/lyrics"

	"github.com/gin-gonic/gin"
)

// LyricsService 生成歌词结果，*app.App 实现了它
type LyricsService interface {
	Lyrics(ctx context.Context, artist, title string) lyrics.Result
}

// LyricsHandler handles lyrics requests
type LyricsHandler struct {
	service LyricsService
}

// NewLyricsHandler creates a new lyrics handler
func NewLyricsHandler(service LyricsService) *LyricsHandler {
	return &LyricsHandler{service: service}
}

// Get returns {"lyrics": result}; with ?position= it also returns the index of the current line
func (h *LyricsHandler) Get(c *gin.Context) {
	artist := strings.TrimSpace(c.Query("artist"))
	title := strings.TrimSpace(c.Query("title"))
	if artist == "" || title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and artist are required"})
		return
	}

	var position *float64
	if raw := c.Query("position"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "position must be a number of seconds"})
			return
		}
		position = &p
	}

	result := h.service.Lyrics(c.Request.Context(), artist, title)

	resp := gin.H{"lyrics": result}
	if position != nil {
		resp["currentLine"] = result.LineIndexAt(*position)
	}

	c.Header("Cache-Control", "no-cache")
	c.JSON(http.StatusOK, resp)
}

// Health is a liveness probe
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
