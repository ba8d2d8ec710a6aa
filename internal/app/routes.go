package app

import (
	"time"

	"github.com/kbimsara/todo-infrastructure/internal/config"
	"github.com/kbimsara/todo-infrastructure/internal/dto"
	"github.com/kbimsara/todo-infrastructure/internal/handlers"
	"github.com/kbimsara/todo-infrastructure/internal/repo"
	"github.com/kbimsara/todo-infrastructure/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

const serviceName = "todo-api"

// Setup registers all routes on the given engine. The repo is injected so
// tests can run the full router against an in-memory store.
func Setup(r *gin.Engine, cfg config.Config, todoRepo repo.TodoRepo) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler())
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	todoSvc := service.NewTodoService(todoRepo)
	todoHandler := handlers.NewTodoHandler(todoSvc)
	registerTodoRoutes(r, todoHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": serviceName,
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

// healthHandler answers the load balancer's liveness probe. It deliberately
// does not touch the store: an instance with a degraded database still
// accepts traffic, and the client sees store errors per request instead.
func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, dto.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Service:   serviceName,
		})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTodoRoutes(r *gin.Engine, h *handlers.TodoHandler) {
	r.GET("/todos", h.List)
	r.POST("/todos", h.Create)
	r.GET("/todos/:id", h.GetByID)
	r.PUT("/todos/:id", h.Update)
	r.DELETE("/todos/:id", h.Delete)
}
