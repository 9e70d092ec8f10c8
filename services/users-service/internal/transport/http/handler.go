package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/authz"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/httpx"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/middlewares"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/users-service/internal/repository"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/users-service/internal/service"
)

type UserHandler struct {
	svc             *service.UserSvc
	bookings        *httpx.Client
	bookingsBaseURL string
}

func NewUserHandler(svc *service.UserSvc, bookingsBaseURL string) *UserHandler {
	return &UserHandler{
		svc:             svc,
		bookings:        httpx.NewClient("bookings-service"),
		bookingsBaseURL: bookingsBaseURL,
	}
}

// Register mounts the user routes. Register/login are open but rate limited;
// everything else sits behind the JWT.
func (h *UserHandler) Register(r *gin.Engine) {
	limited := middlewares.RateLimit(10, time.Minute)
	r.POST("/users/register", limited, h.SignUp)
	r.POST("/users/login", limited, h.Login)

	secured := r.Group("", middlewares.JWTAuth())
	{
		secured.GET("/users/me", h.Me)
		secured.PUT("/users/me", h.UpdateMe)
		secured.DELETE("/users/me", h.DeleteMe)

		secured.GET("/users", h.List)
		secured.GET("/users/username/:username", h.GetByUsername)
		secured.GET("/users/:id/bookings", h.BookingHistory)

		secured.POST("/admin/users", h.AdminCreate)
		secured.PUT("/admin/users/:id", h.AdminUpdate)
		secured.DELETE("/admin/users/:id", h.AdminDelete)
		secured.PATCH("/admin/users/:id/role", h.ChangeRole)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// POST /users/register
func (h *UserHandler) SignUp(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in.Username, in.Email, in.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, token, err := h.svc.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "user": u})
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.svc.Profile(c.Request.Context(), middlewares.CurrentIdentity(c).Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var in struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), middlewares.CurrentIdentity(c).Context(),
		service.ProfileUpdateParams{Email: in.Email, Password: in.Password})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.svc.DeleteSelf(c.Request.Context(), middlewares.CurrentIdentity(c).Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context(), middlewares.CurrentIdentity(c).Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /users/username/:username
func (h *UserHandler) GetByUsername(c *gin.Context) {
	u, err := h.svc.GetByUsername(c.Request.Context(), middlewares.CurrentIdentity(c).Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /users/:id/bookings proxies to the bookings service, which applies its
// own user_history policy to the forwarded token. The circuit breaker keeps a
// dead bookings service from tying up user requests.
func (h *UserHandler) BookingHistory(c *gin.Context) {
	url := h.bookingsBaseURL + "/bookings/user/" + c.Param("id")
	body, status, err := h.bookings.GetJSON(c.Request.Context(), url, map[string]string{
		"Authorization": c.GetHeader("Authorization"),
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking history temporarily unavailable"})
		return
	}
	c.Data(status, "application/json", body)
}

// POST /admin/users
func (h *UserHandler) AdminCreate(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.AdminCreate(c.Request.Context(), middlewares.CurrentIdentity(c).Context(),
		in.Username, in.Email, in.Password, authz.Role(in.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// PUT /admin/users/:id
func (h *UserHandler) AdminUpdate(c *gin.Context) {
	var in struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.AdminUpdate(c.Request.Context(), middlewares.CurrentIdentity(c).Context(), c.Param("id"),
		service.ProfileUpdateParams{Email: in.Email, Password: in.Password})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /admin/users/:id
func (h *UserHandler) AdminDelete(c *gin.Context) {
	if err := h.svc.AdminDelete(c.Request.Context(), middlewares.CurrentIdentity(c).Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// PATCH /admin/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var in struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.ChangeRole(c.Request.Context(), middlewares.CurrentIdentity(c).Context(),
		c.Param("id"), authz.Role(in.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
