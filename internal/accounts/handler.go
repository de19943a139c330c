package accounts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/shared/server/middleware"
	"resume-generator/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// ActorFromContext builds the request actor from auth middleware values.
func ActorFromContext(c *gin.Context) Actor {
	return Actor{
		ID:   middleware.ActorIDFromContext(c),
		Role: Role(middleware.ActorRoleFromContext(c)),
	}
}

// RegisterAuthRoutes attaches unauthenticated sign-in routes.
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signin", h.signIn)
}

// RegisterAdminRoutes attaches admin-only account management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.list)
	rg.POST("/users", h.create)
	rg.DELETE("/users/:id", h.delete)
	rg.PUT("/users/:id/role", h.changeRole)
	rg.PUT("/users/:id/password", h.setPassword)
	rg.POST("/assign-bidder", h.assignBidder)
}

// RegisterDevRoutes attaches developer self-service routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.GET("/bidders", h.bidders)
	rg.GET("/llm-credentials", h.getLLMCredentials)
	rg.POST("/llm-credentials", h.setLLMCredentials)
}

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username and password are required", nil)
		return
	}

	token, account, err := h.Svc.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "sign in failed", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"token":    token,
		"username": account.Username,
		"role":     account.Role,
	})
}

type createUserRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role" binding:"required"`
	SupervisorID string `json:"supervisorId"`
}

func (h *Handler) create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	account, err := h.Svc.Create(c.Request.Context(), ActorFromContext(c), req.Username, req.Password, Role(req.Role), req.SupervisorID)
	if err != nil {
		h.writeError(c, err, "failed to create user")
		return
	}
	respond.JSON(c, http.StatusCreated, account)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), ActorFromContext(c))
	if err != nil {
		h.writeError(c, err, "failed to list users")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), ActorFromContext(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to delete user")
		return
	}
	respond.OK(c, gin.H{"success": true})
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *Handler) changeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "role is required", nil)
		return
	}

	account, err := h.Svc.ChangeRole(c.Request.Context(), ActorFromContext(c), c.Param("id"), Role(req.Role))
	if err != nil {
		h.writeError(c, err, "failed to change role")
		return
	}
	respond.OK(c, account)
}

type setPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) setPassword(c *gin.Context) {
	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "password is required", nil)
		return
	}

	if err := h.Svc.SetPassword(c.Request.Context(), ActorFromContext(c), c.Param("id"), req.Password); err != nil {
		h.writeError(c, err, "failed to change password")
		return
	}
	respond.OK(c, gin.H{"success": true})
}

type assignBidderRequest struct {
	BidderID    string `json:"bidderId" binding:"required"`
	DeveloperID string `json:"developerId" binding:"required"`
}

func (h *Handler) assignBidder(c *gin.Context) {
	var req assignBidderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "bidderId and developerId are required", nil)
		return
	}

	account, err := h.Svc.AssignSupervisor(c.Request.Context(), ActorFromContext(c), req.BidderID, req.DeveloperID)
	if err != nil {
		h.writeError(c, err, "failed to assign bidder")
		return
	}
	respond.OK(c, account)
}

func (h *Handler) bidders(c *gin.Context) {
	actor := ActorFromContext(c)
	out, err := h.Svc.Bidders(c.Request.Context(), actor, actor.ID)
	if err != nil {
		h.writeError(c, err, "failed to list bidders")
		return
	}
	respond.OK(c, out)
}

type llmCredentialsRequest struct {
	Token  *string `json:"token"`
	Prompt *string `json:"prompt"`
}

func (h *Handler) setLLMCredentials(c *gin.Context) {
	var req llmCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Token == nil && req.Prompt == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "token or prompt is required", nil)
		return
	}

	if err := h.Svc.SetLLMCredentials(c.Request.Context(), ActorFromContext(c), req.Token, req.Prompt); err != nil {
		h.writeError(c, err, "failed to save credentials")
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) getLLMCredentials(c *gin.Context) {
	token, prompt, err := h.Svc.GetLLMCredentials(c.Request.Context(), ActorFromContext(c))
	if err != nil {
		h.writeError(c, err, "failed to fetch credentials")
		return
	}
	respond.OK(c, gin.H{"token": token, "prompt": prompt})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed", nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "account not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
