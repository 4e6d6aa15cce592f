package identities

import (
	"fmt"
	"net/http"

	"github.com/Aidin1998/apiexercises/common/apiutil"
	"github.com/Aidin1998/apiexercises/internal/auth"
	"github.com/Aidin1998/apiexercises/internal/middleware/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userContextKey = "identities_user"

// Handler holds the JWT demo endpoints
type Handler struct {
	log     *zap.Logger
	users   IdentityService
	tokens  *auth.TokenService
	limiter ratelimit.Limiter
}

// NewHandler creates the handler. A nil limiter disables login throttling.
func NewHandler(log *zap.Logger, users IdentityService, tokens *auth.TokenService, limiter ratelimit.Limiter) *Handler {
	return &Handler{log: log, users: users, tokens: tokens, limiter: limiter}
}

// RegisterRoutes mounts the endpoints on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	throttle := ratelimit.Middleware(h.limiter, h.log, ratelimit.ErrTooManyLoginAttempts)

	r.GET("/users/", h.AllUsers)
	r.POST("/register/", h.Register)
	r.POST("/login/", throttle, h.Login)
	r.POST("/jwt-login/", throttle, h.JWTLogin)

	authorized := r.Group("", auth.Middleware(h.tokens), h.currentUser)
	authorized.GET("/profile/", h.Profile)
	authorized.PUT("/profile/", h.UpdateProfile)
	authorized.GET("/admin/", h.Admin)
}

// currentUser loads the account of the token subject
func (h *Handler) currentUser(c *gin.Context) {
	user, err := h.users.Account(c.Request.Context(), auth.Subject(c))
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.Set(userContextKey, user)
	c.Next()
}

func userFrom(c *gin.Context) *User {
	return c.MustGet(userContextKey).(*User)
}

// AllUsers lists the accounts
// @Summary List users
// @Tags Database Integration
// @Produce json
// @Success 200 {array} User
// @Failure 404 {object} apiutil.ErrorResponse "No user found!"
// @Router /users/ [get]
func (h *Handler) AllUsers(c *gin.Context) {
	users, err := h.users.Users(c.Request.Context())
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Register creates an account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account"
// @Success 200 {object} User
// @Failure 400 {object} apiutil.ErrorResponse "User already exists!"
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /register/ [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login checks a username and password
// @Summary Password login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {string} string "Login Successful"
// @Failure 400 {object} apiutil.ErrorResponse "Incorrect password!"
// @Failure 404 {object} apiutil.ErrorResponse "User Not Found!"
// @Failure 429 {object} apiutil.ErrorResponse
// @Router /login/ [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	if _, err := h.users.Login(c.Request.Context(), &req); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, "Login Successful")
}

// JWTLogin issues an access token for the OAuth2 password form
// @Summary Token login
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} auth.Token
// @Failure 401 {object} apiutil.ErrorResponse "Incorrect Credentials!"
// @Failure 429 {object} apiutil.ErrorResponse
// @Router /jwt-login/ [post]
func (h *Handler) JWTLogin(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	token, err := h.users.IssueToken(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Profile returns the profile of the authenticated account
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Profile
// @Failure 401 {object} apiutil.ErrorResponse
// @Router /profile/ [get]
func (h *Handler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, userFrom(c).Profile())
}

// UpdateProfile replaces the profile of the authenticated account
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileIn true "Profile"
// @Success 200 {object} Profile
// @Failure 401 {object} apiutil.ErrorResponse
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /profile/ [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileIn
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userFrom(c).Username, &req)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

// Admin greets the admin account
// @Summary Admin area
// @Tags Role Based
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} apiutil.ErrorResponse
// @Failure 403 {object} apiutil.ErrorResponse "You are not admin."
// @Router /admin/ [get]
func (h *Handler) Admin(c *gin.Context) {
	user := userFrom(c)
	if err := h.users.RequireAdmin(user); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Welcome, %s!", user.Name)})
}
