package httpserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	products := router.Group("/products")
	{
		products.POST("", saveProductHandler(deps.ProductSvc, logger))
		products.POST("/sync", syncHandler(deps.SyncSvc, logger))
		products.GET("", listProductsHandler(deps.ProductSvc, logger))
		products.GET("/:name", getProductHandler(deps.ProductSvc, logger))
		products.PUT("/:id", updateProductHandler(deps.ProductSvc, logger))
		products.DELETE("/:name", deleteProductHandler(deps.ProductSvc, logger))
	}

	return router
}
