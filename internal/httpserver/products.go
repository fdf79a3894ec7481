package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fakestore-sync/internal/domain"
)

// ProductService is the single-record surface the product routes map onto.
type ProductService interface {
	Save(ctx context.Context, in domain.ProductPayload) (*domain.ProductPayload, error)
	GetByName(ctx context.Context, name string) (*domain.ProductPayload, error)
	List(ctx context.Context) ([]domain.ProductPayload, error)
	Update(ctx context.Context, id string, in domain.ProductPayload) (*domain.ProductPayload, error)
	DeleteByName(ctx context.Context, name string) error
}

// SyncService runs a catalog synchronization and returns the stored set.
type SyncService interface {
	Run(ctx context.Context) ([]domain.ProductPayload, error)
}

// writeError maps the error taxonomy onto HTTP statuses: conflict to 409,
// not-found to 404, anything else to 500 with a generic body.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func saveProductHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.ProductPayload
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
			return
		}
		if in.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		saved, err := svc.Save(c.Request.Context(), in)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
	}
}

func syncHandler(svc SyncService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.Run(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func listProductsHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if products == nil {
			products = []domain.ProductPayload{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetByName(c.Request.Context(), c.Param("name"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func updateProductHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.ProductPayload
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteProductHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteByName(c.Request.Context(), c.Param("name")); err != nil {
			writeError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
