package httpserver

import (
	"errors"
	"net/http"

	"techshop/internal/domain"
	authsvc "techshop/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func registerHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authsvc.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}

		user, token, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, authsvc.ErrUserExists):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			case errors.Is(err, authsvc.ErrInvalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "registration successful",
			"token":   token,
			"user":    user,
		})
	}
}

func loginHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username and password required"})
			return
		}

		user, token, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid username or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "login successful",
			"token":   token,
			"user":    user,
		})
	}
}

func currentUserHandler(users userStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		user, err := users.GetByID(c.Request.Context(), id.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
