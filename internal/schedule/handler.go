package schedule

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"animecal/internal/catalog"
	"animecal/pkg/models"
)

type Handler struct {
	Service *Service
	Catalog *catalog.Client
}

func NewHandler(service *Service, client *catalog.Client) *Handler {
	return &Handler{Service: service, Catalog: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/episodes", h.list)
	rg.GET("/episodes/daily", h.daily)
	rg.GET("/episodes/calendar", h.calendar)
	rg.GET("/episodes/genres", h.genres)

	rg.GET("/anime/search", h.search)
	rg.GET("/anime/top", h.top)
	rg.GET("/anime/:id", h.animeByID)
	rg.GET("/schedules/:day", h.scheduleForDay)
}

// RegisterProtected mounts the mutating routes on an authenticated group.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("/episodes/refresh", h.refresh)
}

type episodeView struct {
	models.Episode
	TimeUntilRelease string `json:"time_until_release"`
}

func (h *Handler) views(episodes []models.Episode) []episodeView {
	now := h.Service.DisplayNow()
	out := make([]episodeView, 0, len(episodes))
	for _, ep := range episodes {
		out = append(out, episodeView{
			Episode:          ep,
			TimeUntilRelease: TimeUntil(ep.ReleaseTime, now),
		})
	}
	return out
}

func (h *Handler) filtered(c *gin.Context) []models.Episode {
	query := c.Query("q")
	genre := c.DefaultQuery("genre", GenreAll)
	return Filter(h.Service.Episodes(), query, genre)
}

func (h *Handler) list(c *gin.Context) {
	episodes := h.filtered(c)
	c.JSON(http.StatusOK, gin.H{
		"total":    len(episodes),
		"source":   h.Service.Source(),
		"episodes": h.views(episodes),
	})
}

func (h *Handler) daily(c *gin.Context) {
	episodes := Daily(h.filtered(c), h.Service.DisplayNow())
	c.JSON(http.StatusOK, gin.H{
		"total":    len(episodes),
		"episodes": h.views(episodes),
	})
}

func (h *Handler) calendar(c *gin.Context) {
	now := h.Service.DisplayNow()
	buckets := Monthly(h.filtered(c), now)
	c.JSON(http.StatusOK, gin.H{
		"days":         len(buckets),
		"refreshed_at": now.UTC(),
		"buckets":      buckets,
	})
}

func (h *Handler) genres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genres": GenreOptions(h.Service.Episodes())})
}

func (h *Handler) refresh(c *gin.Context) {
	h.Service.Load(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"total":  len(h.Service.Episodes()),
		"source": h.Service.Source(),
	})
}

func (h *Handler) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q required"})
		return
	}

	resp, err := h.Catalog.Search(c.Request.Context(), query, parseInt(c.Query("page"), 1))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) top(c *gin.Context) {
	resp, err := h.Catalog.TopAnime(c.Request.Context(), parseInt(c.Query("page"), 1))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) animeByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	anime, err := h.Catalog.AnimeByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": anime})
}

func (h *Handler) scheduleForDay(c *gin.Context) {
	resp, err := h.Catalog.ScheduleForDay(c.Request.Context(), c.Param("day"))
	if err != nil {
		if strings.Contains(err.Error(), "invalid weekday") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "day must be monday..sunday"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
