package httpserver

import (
	"errors"
	"net/http"

	"techshop/internal/domain"
	userrepo "techshop/internal/repository/user"
	"github.com/gin-gonic/gin"
)

type updateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
}

func listUsersHandler(users userStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load users"})
			return
		}
		if list == nil {
			list = []domain.User{}
		}
		c.JSON(http.StatusOK, list)
	}
}

func getUserHandler(users userStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondUserError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func updateUserHandler(users userStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		if req.Role != nil && *req.Role != domain.RoleUser && *req.Role != domain.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid role"})
			return
		}

		user, err := users.Update(c.Request.Context(), c.Param("id"), userrepo.UpdateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Role:      req.Role,
		})
		if err != nil {
			respondUserError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func deleteUserHandler(users userStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := users.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondUserError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
	}
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "email already in use"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "user operation failed"})
	}
}
