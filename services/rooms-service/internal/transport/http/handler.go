package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/middlewares"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/domain"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/repository"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/service"
)

type RoomHandler struct {
	svc *service.RoomSvc
}

func NewRoomHandler(svc *service.RoomSvc) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// Register mounts the room routes. Reads are public; inventory changes go
// through the rooms policy table (admin and facility managers).
func (h *RoomHandler) Register(r *gin.Engine) {
	r.GET("/rooms", h.List)
	r.GET("/rooms/:id", h.Get)

	secured := r.Group("", middlewares.JWTAuth())
	{
		secured.POST("/rooms", h.Create)
		secured.PUT("/rooms/:id", h.Update)
		secured.DELETE("/rooms/:id", h.Delete)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "room already exists"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// GET /rooms
func (h *RoomHandler) List(c *gin.Context) {
	caller := middlewares.CurrentIdentity(c).Context()
	out, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /rooms/:id
func (h *RoomHandler) Get(c *gin.Context) {
	caller := middlewares.CurrentIdentity(c).Context()
	room, err := h.svc.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// POST /rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var in struct {
		Name      string `json:"name" binding:"required"`
		Capacity  int    `json:"capacity" binding:"required"`
		Equipment string `json:"equipment" binding:"required"`
		Location  string `json:"location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller := middlewares.CurrentIdentity(c).Context()
	room, err := h.svc.Create(c.Request.Context(), caller, domain.Room{
		Name:      in.Name,
		Capacity:  in.Capacity,
		Equipment: in.Equipment,
		Location:  in.Location,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// PUT /rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	var in struct {
		Name      *string `json:"name"`
		Capacity  *int    `json:"capacity"`
		Equipment *string `json:"equipment"`
		Location  *string `json:"location"`
		Available *bool   `json:"available"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller := middlewares.CurrentIdentity(c).Context()
	room, err := h.svc.Update(c.Request.Context(), caller, c.Param("id"), service.UpdateParams{
		Name:      in.Name,
		Capacity:  in.Capacity,
		Equipment: in.Equipment,
		Location:  in.Location,
		Available: in.Available,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DELETE /rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	caller := middlewares.CurrentIdentity(c).Context()
	if err := h.svc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
