package services

import (
	"errors"
	"strings"

	"taskboard/backend/internal/models"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegistrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserService interface {
	Register(db *gorm.DB, req RegistrationRequest) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*models.User, error)
	VerifyPassword(user *models.User, candidate string) bool
}

type UserServiceImpl struct {
	bcryptCost int
}

func NewUserService(bcryptCost int) *UserServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserServiceImpl{bcryptCost: bcryptCost}
}

// Register validates the request, hashes the password and creates the user.
// Only the bcrypt digest is ever persisted.
func (s *UserServiceImpl) Register(db *gorm.DB, req RegistrationRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	var messages []string
	if req.Name == "" {
		messages = append(messages, "Name can't be blank")
	}
	if req.Email == "" {
		messages = append(messages, "Email can't be blank")
	}
	if msg := validatePassword(req.Password); msg != "" {
		messages = append(messages, msg)
	}
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, NewValidationError("Email has already been taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:             uuid.Must(uuid.NewV4()),
		Name:           req.Name,
		Email:          req.Email,
		PasswordDigest: string(digest),
	}

	if err := db.Create(&user).Error; err != nil {
		// The unique index is the backstop for concurrent registrations
		// racing past the lookup above.
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(err.Error(), "duplicate key") {
			return nil, NewValidationError("Email has already been taken")
		}
		return nil, err
	}

	return &user, nil
}

// FindByEmail returns (nil, nil) when no user matches.
func (s *UserServiceImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns (nil, nil) when no user matches.
func (s *UserServiceImpl) FindByID(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) VerifyPassword(user *models.User, candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(candidate))
	return err == nil
}

// validatePassword enforces the strength policy: minimum 8 characters with at
// least one uppercase letter, one lowercase letter and one digit.
func validatePassword(password string) string {
	if len(password) < 8 {
		return "Password must include at least one uppercase letter, one lowercase letter, and one number (min 8 characters)"
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		switch {
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= '0' && char <= '9':
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return "Password must include at least one uppercase letter, one lowercase letter, and one number (min 8 characters)"
	}

	return ""
}
