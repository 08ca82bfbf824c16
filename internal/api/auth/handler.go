package auth

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"subscription-plans/internal/api/httperr"
	"subscription-plans/internal/apperr"
	"subscription-plans/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	Create(ctx context.Context, u *users.User) error
}

type Handler struct {
	users     UserStore
	jwtSecret []byte
	now       func() time.Time
}

func NewHandler(store UserStore, jwtSecret string) *Handler {
	return &Handler{users: store, jwtSecret: []byte(jwtSecret), now: time.Now}
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func isEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

// Register creates a regular (non-admin) account.
func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BadRequest(c, "Name, email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !isEmailValid(email) {
		httperr.BadRequest(c, "Invalid email format")
		return
	}
	if !isPasswordStrong(input.Password) {
		httperr.BadRequest(c, "Password must be at least 8 characters long and contain both letters and numbers")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	user := users.User{
		Name:     input.Name,
		Email:    email,
		Password: string(hashed),
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "code": "CONFLICT"})
			return
		}
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"userId": user.ID})
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BadRequest(c, "Email and password are required")
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		httperr.Write(c, apperr.Unauthorized("Invalid credentials"))
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) issueToken(user *users.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     h.now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(h.jwtSecret)
}
