package httpserver

import (
	"errors"
	"net/http"

	"techshop/internal/domain"
	catalogsvc "techshop/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load products"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func createProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		product, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondCatalogError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func updateProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		product, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondCatalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func deleteProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondCatalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
	case errors.Is(err, catalogsvc.ErrNameRequired),
		errors.Is(err, catalogsvc.ErrInvalidCategory),
		errors.Is(err, catalogsvc.ErrNegativePrice),
		errors.Is(err, catalogsvc.ErrNegativeStock):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "catalog operation failed"})
	}
}
