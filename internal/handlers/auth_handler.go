package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-queue/internal/clock"
	"github.com/BruksfildServices01/salon-queue/internal/config"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/httpresp"
	"github.com/BruksfildServices01/salon-queue/internal/middleware"
	"github.com/BruksfildServices01/salon-queue/internal/models"
	ucAccount "github.com/BruksfildServices01/salon-queue/internal/usecase/account"
)

type AuthHandler struct {
	register *ucAccount.Register
	login    *ucAccount.Login
	profile  *ucAccount.UpdateProfile
	users    user.Repository
	config   *config.Config
	clock    clock.Clock
}

func NewAuthHandler(
	register *ucAccount.Register,
	login *ucAccount.Login,
	profile *ucAccount.UpdateProfile,
	users user.Repository,
	cfg *config.Config,
	clock clock.Clock,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		profile:  profile,
		users:    users,
		config:   cfg,
		clock:    clock,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"isAdmin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Email and password are required.")
		return
	}

	u, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_register")
		return
	}

	h.issueSession(c, u, http.StatusCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Email and password are required.")
		return
	}

	u, err := h.login.Execute(c.Request.Context(), ucAccount.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		AsAdmin:  req.IsAdmin,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_login")
		return
	}

	h.issueSession(c, u, http.StatusOK)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c, h.config)
	httpresp.OK(c, gin.H{"message": "Logged out"})
}

// Me returns the caller, or null when the request carries no valid session.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httpresp.Null(c)
		return
	}

	u, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeUserNotFound) {
			httpresp.Null(c)
			return
		}
		httperr.FromError(c, err, "failed_to_get_user")
		return
	}

	httpresp.OK(c, u)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid request.")
		return
	}

	u, err := h.profile.Execute(c.Request.Context(), userID, ucAccount.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_profile")
		return
	}

	httpresp.OK(c, u)
}

func (h *AuthHandler) issueSession(c *gin.Context, u *models.User, status int) {
	token, err := middleware.GenerateToken(h.config, u, h.clock.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create a session.")
		return
	}

	middleware.SetAuthCookie(c, h.config, token)
	c.JSON(status, gin.H{
		"user":  u,
		"token": token,
	})
}
