package api

import (
	"net/http"

	"github.com/Domenick1991/flightservice/internal/session"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	sessions *session.Manager
}

type createUserRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	InitialBalance int    `json:"initial_balance"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAccountHandler(sessions *session.Manager) *AccountHandler {
	return &AccountHandler{sessions: sessions}
}

func (h *AccountHandler) Register(router *gin.RouterGroup) {
	router.POST("/users", h.createUser)
	router.POST("/sessions", h.openSession)
	router.DELETE("/sessions", h.closeSession)
	router.POST("/login", h.login)
}

func (h *AccountHandler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Creating a customer does not require a login, but the outcome
	// formatting lives on the session, so an anonymous one works too.
	s := sessionFrom(c, h.sessions)
	if s == nil {
		s = h.sessions.Open()
		defer h.sessions.Close(s.ID())
	}
	c.JSON(http.StatusOK, gin.H{"outcome": s.CreateCustomer(c.Request.Context(), req.Username, req.Password, req.InitialBalance)})
}

func (h *AccountHandler) openSession(c *gin.Context) {
	s := h.sessions.Open()
	c.JSON(http.StatusCreated, gin.H{"token": s.ID()})
}

func (h *AccountHandler) closeSession(c *gin.Context) {
	token := c.GetHeader(sessionHeader)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session token"})
		return
	}
	h.sessions.Close(token)
	c.Status(http.StatusNoContent)
}

func (h *AccountHandler) login(c *gin.Context) {
	s := requireSession(c, h.sessions)
	if s == nil {
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": s.Login(c.Request.Context(), req.Username, req.Password)})
}
