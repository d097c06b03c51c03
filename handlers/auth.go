package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"resumeforge/utils"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "Email and a password of at least 6 characters are required")
		return
	}

	if _, err := h.Users.GetByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, AuthResponse{Success: false, Message: "An account with this email already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.log.Error("user lookup failed", err)
		utils.InternalServerError(c, "Could not create the account. Please try again.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("password hashing failed", err)
		utils.InternalServerError(c, "Could not create the account. Please try again.")
		return
	}

	user, err := h.Users.Create(req.Email, req.Name, string(hashed))
	if err != nil {
		h.log.Error("user creation failed", err)
		utils.InternalServerError(c, "Could not create the account. Please try again.")
		return
	}

	token, err := h.JWT.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.log.Error("token generation failed", err)
		utils.InternalServerError(c, "Could not create the account. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created",
		Token:   token,
		Email:   user.Email,
		Name:    user.Name,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "Email and password are required")
		return
	}

	user, err := h.Users.GetByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid email or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid email or password"})
		return
	}

	token, err := h.JWT.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.log.Error("token generation failed", err)
		utils.InternalServerError(c, "Could not sign in. Please try again.")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in",
		Token:   token,
		Email:   user.Email,
		Name:    user.Name,
	})
}

// AuthMiddleware validates the bearer token and stores the user id in
// the request context for downstream handlers.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			utils.UnauthorizedError(c, "Authorization header required")
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := h.JWT.ValidateToken(tokenString)
		if err != nil {
			utils.UnauthorizedError(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// userID pulls the authenticated user id set by AuthMiddleware.
func userID(c *gin.Context) (int, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
