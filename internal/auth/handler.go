package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/prajanews/cms-backend/internal/storage"
)

type Handler struct {
	store  storage.Store
	tokens TokenService
}

func NewHandler(store storage.Store, tokens TokenService) *Handler {
	return &Handler{store: store, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Login authenticates an admin by email and password and issues a
// bearer token. Wrong email and wrong password are indistinguishable to
// the caller.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	admin, err := h.store.GetAdminByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("Failed to look up admin %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, _, err := h.tokens.Sign(admin)
	if err != nil {
		log.Printf("Failed to sign token for admin %s: %v", admin.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		ID:    admin.ID.String(),
		Email: admin.Email,
		Name:  admin.Name,
		Role:  admin.Role,
		Token: token,
	})
}

// HashPassword wraps bcrypt for admin provisioning.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
