package api

import (
	"net/http"

	"github.com/Domenick1991/flightservice/internal/session"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	sessions *session.Manager
}

type searchRequest struct {
	OriginCity string `json:"origin_city"`
	DestCity   string `json:"dest_city"`
	DirectOnly bool   `json:"direct_only"`
	DayOfMonth int    `json:"day_of_month"`
	Limit      int    `json:"limit"`
}

func NewSearchHandler(sessions *session.Manager) *SearchHandler {
	return &SearchHandler{sessions: sessions}
}

func (h *SearchHandler) Register(router *gin.RouterGroup) {
	router.POST("/search", h.search)
}

func (h *SearchHandler) search(c *gin.Context) {
	s := requireSession(c, h.sessions)
	if s == nil {
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out := s.Search(c.Request.Context(), req.OriginCity, req.DestCity, req.DirectOnly, req.DayOfMonth, req.Limit)
	c.JSON(http.StatusOK, gin.H{"outcome": out})
}
