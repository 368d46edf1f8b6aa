package httpserver

import (
	"errors"
	"net/http"

	"techshop/internal/domain"
	cartsvc "techshop/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type updateCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		cart, err := svc.Get(c.Request.Context(), id.UserID)
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addToCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		if req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "product id required"})
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		cart, err := svc.Add(c.Request.Context(), id.UserID, req.ProductID, quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func updateCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		if req.ProductID == "" || req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "product id and quantity required"})
			return
		}

		cart, err := svc.Update(c.Request.Context(), id.UserID, req.ProductID, *req.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func removeFromCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		cart, err := svc.Remove(c.Request.Context(), id.UserID, c.Param("productId"))
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		if err := svc.Clear(c.Request.Context(), id.UserID); err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}

func respondCartError(c *gin.Context, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "insufficient stock",
			"available": stockErr.Available,
		})
	case errors.Is(err, cartsvc.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, cartsvc.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
	case errors.Is(err, cartsvc.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found in cart"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "cart not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "cart operation failed"})
	}
}
