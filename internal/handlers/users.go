package handlers

import (
	"net/http"

	"taskboard/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type UserHandler struct {
	db    *gorm.DB
	users services.UserService
}

func NewUserHandler(db *gorm.DB, users services.UserService) *UserHandler {
	return &UserHandler{db: db, users: users}
}

type createUserRequest struct {
	User services.RegistrationRequest `json:"user"`
}

// CreateUser registers a new account. Validation problems come back as a 422
// carrying every failed check.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.users.Register(h.db, req.User)
	if err != nil {
		if verr, ok := services.AsValidationError(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Messages})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// GetUser looks a user up by identifier. Unparseable identifiers are treated
// like absent users.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user, err := h.users.FindByID(h.db, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
