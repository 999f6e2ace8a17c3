package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	imagepkg "github.com/youruser/killfeedapp/internal/image"
	"github.com/youruser/killfeedapp/internal/killboard"
)

const maxItemSize = 512

type Handler struct {
	composer *imagepkg.Composer
	log      zerolog.Logger
}

func NewHandler(composer *imagepkg.Composer, log zerolog.Logger) *Handler {
	return &Handler{composer: composer, log: log}
}

// health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// killImage renders one side of the kill event posted as JSON.
// ?side=Victim|Killer, default Victim.
func (h *Handler) killImage(c *gin.Context) {
	side, err := killboard.ParseSide(c.DefaultQuery("side", string(killboard.Victim)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev, err := killboard.DecodeEvent(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.composer.Compose(c.Request.Context(), side, ev)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, killboard.ErrUnknownSide) {
			status = http.StatusBadRequest
		}
		h.log.Error().Err(err).Int64("event_id", ev.EventID).Str("side", string(side)).Msg("compose kill image")
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, h.composer.Format().ContentType(), b)
}

// itemImage renders a single item cell, e.g. /api/item/T8_MAIN_SWORD@3?count=1&quality=4
func (h *Handler) itemImage(c *gin.Context) {
	itemType := strings.TrimSpace(c.Param("type"))
	if itemType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item type is required"})
		return
	}
	count, err := queryInt(c, "count", 1)
	if err != nil || count < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
		return
	}
	quality, err := queryInt(c, "quality", 0)
	if err != nil || quality < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quality must be a non-negative integer"})
		return
	}
	size, err := queryInt(c, "size", imagepkg.ItemSize)
	if err != nil || size < 1 || size > maxItemSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and " + strconv.Itoa(maxItemSize)})
		return
	}

	item := &killboard.Item{Type: itemType, Count: count, Quality: quality}
	cell, err := h.composer.Items().Render(c.Request.Context(), item, size)
	if err != nil {
		h.log.Error().Err(err).Str("item", itemType).Msg("render item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	b, err := h.composer.EncodeCell(cell)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, h.composer.Format().ContentType(), b)
}

// killQR returns a PNG QR code pointing at the kill on the public killboard.
func (h *Handler) killQR(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	size, err := queryInt(c, "size", imagepkg.DefaultQRSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer"})
		return
	}
	b, err := imagepkg.KillboardQRPNG(id, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
