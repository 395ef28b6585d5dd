package favorites

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"animecal/internal/auth"
	"animecal/internal/sync"
)

type Handler struct {
	Service *Service
	Hub     *sync.Hub
}

func NewHandler(service *Service, hub *sync.Hub) *Handler {
	return &Handler{Service: service, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.list)
	rg.POST("/favorites", h.add)
	rg.DELETE("/favorites/:anime_id", h.remove)
	rg.GET("/favorites/:anime_id", h.check)
}

type addReq struct {
	AnimeID    string `json:"anime_id"`
	AnimeTitle string `json:"anime_title"`
	AnimeImage string `json:"anime_image"`
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.Service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

func (h *Handler) add(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	req.AnimeID = strings.TrimSpace(req.AnimeID)
	req.AnimeTitle = strings.TrimSpace(req.AnimeTitle)
	if req.AnimeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anime_id required"})
		return
	}
	if req.AnimeTitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anime_title required"})
		return
	}

	fav, err := h.Service.Add(c.Request.Context(), claims.UserID, req.AnimeID, req.AnimeTitle, req.AnimeImage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		ev := sync.FavoriteEvent{
			Type:       sync.EventFavoriteAdd,
			UserID:     claims.UserID,
			AnimeID:    fav.AnimeID,
			AnimeTitle: fav.AnimeTitle,
			At:         time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, fav)
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	animeID := strings.TrimSpace(c.Param("anime_id"))
	if animeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anime_id required"})
		return
	}

	if err := h.Service.Remove(c.Request.Context(), claims.UserID, animeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	if h.Hub != nil {
		ev := sync.FavoriteEvent{
			Type:    sync.EventFavoriteRemove,
			UserID:  claims.UserID,
			AnimeID: animeID,
			At:      time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}

func (h *Handler) check(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	animeID := strings.TrimSpace(c.Param("anime_id"))
	if animeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anime_id required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"anime_id": animeID,
		"favorite": h.Service.IsFavorite(c.Request.Context(), claims.UserID, animeID),
	})
}
