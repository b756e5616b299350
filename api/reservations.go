package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightservice/internal/session"
	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	sessions *session.Manager
}

type bookRequest struct {
	ItineraryIndex int `json:"itinerary_index"`
}

func NewReservationHandler(sessions *session.Manager) *ReservationHandler {
	return &ReservationHandler{sessions: sessions}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/reservations", h.book)
	router.GET("/reservations", h.list)
	router.POST("/reservations/:id/payment", h.pay)
	router.DELETE("/reservations/:id", h.cancel)
}

func (h *ReservationHandler) book(c *gin.Context) {
	s := requireSession(c, h.sessions)
	if s == nil {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": s.Book(c.Request.Context(), req.ItineraryIndex)})
}

func (h *ReservationHandler) list(c *gin.Context) {
	s := requireSession(c, h.sessions)
	if s == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": s.Reservations(c.Request.Context())})
}

func (h *ReservationHandler) pay(c *gin.Context) {
	s := requireSession(c, h.sessions)
	if s == nil {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": s.Pay(c.Request.Context(), id)})
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	s := requireSession(c, h.sessions)
	if s == nil {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": s.Cancel(c.Request.Context(), id)})
}
