package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"quickrent/internal/domain/models"
	"quickrent/internal/repositories"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || len(req.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "email and a password of at least 8 characters are required", nil)
		return
	}
	role := req.Role
	switch role {
	case models.RoleTenant, models.RoleLandlord:
	case "":
		role = models.RoleTenant
	default:
		RespondError(c, http.StatusBadRequest, "role must be tenant or landlord", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	u := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := (repositories.UserRepository{}).Create(&u); err != nil {
		RespondError(c, http.StatusConflict, "email already registered", nil)
		return
	}

	token, err := signSession(u)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	u, err := (repositories.UserRepository{}).GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to load user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	token, err := signSession(u)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

func signSession(u models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(env.JWTSecret))
}
