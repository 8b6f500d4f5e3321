package app

import (
	"Dayflow/internal/auth"
	"Dayflow/internal/cache"
	"Dayflow/internal/config"
	"Dayflow/internal/handlers"
	"Dayflow/internal/repo"
	"Dayflow/internal/service"
	"Dayflow/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	blacklist := auth.NewBlacklist(rdb)
	tokens := token.NewService(
		[]byte(cfg.JWT.Secret),
		cfg.JWT.AccessTTL.Duration(),
		cfg.JWT.RefreshTTL.Duration(),
		blacklist,
	)

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(tokens, userSvc)

	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.POST("/refresh", authHandler.Refresh)

	protected := r.Group("", auth.RequireUser(tokens, userRepo))
	protected.POST("/logout", authHandler.Logout)

	tasklistRepo := repo.NewPGTaskListRepo(db)
	taskRepo := repo.NewPGTaskRepo(db)
	stepRepo := repo.NewPGStepRepo(db)

	tasklistCache := cache.NewTaskListCache(rdb, cfg.Redis.DefaultTTL.Duration())
	tasklistHandler := handlers.NewTaskListHandler(service.NewTaskListService(tasklistRepo, tasklistCache))
	taskHandler := handlers.NewTaskHandler(service.NewTaskService(tasklistRepo, taskRepo, stepRepo))
	stepHandler := handlers.NewStepHandler(service.NewStepService(tasklistRepo, taskRepo, stepRepo))

	registerTaskListRoutes(protected, tasklistHandler)
	registerTaskRoutes(protected, taskHandler)
	registerStepRoutes(protected, stepHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Dayflow API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
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

func registerTaskListRoutes(g *gin.RouterGroup, h *handlers.TaskListHandler) {
	g.GET("/tasklist", h.List)
	g.POST("/tasklist", h.Create)
	g.PATCH("/tasklist", h.Reorder)
	g.GET("/tasklist/:tasklistId", h.Get)
	g.PUT("/tasklist/:tasklistId", h.Update)
	g.DELETE("/tasklist/:tasklistId", h.Delete)
}

func registerTaskRoutes(g *gin.RouterGroup, h *handlers.TaskHandler) {
	g.GET("/tasklist/:tasklistId/tasks", h.List)
	g.POST("/tasklist/:tasklistId/tasks", h.Create)
	g.PATCH("/tasklist/:tasklistId/tasks", h.Reorder)
	g.GET("/tasklist/:tasklistId/tasks/:taskId", h.Get)
	g.PATCH("/tasklist/:tasklistId/tasks/:taskId", h.Update)
	g.DELETE("/tasklist/:tasklistId/tasks/:taskId", h.Delete)
}

func registerStepRoutes(g *gin.RouterGroup, h *handlers.StepHandler) {
	g.POST("/tasklist/:tasklistId/tasks/:taskId/steps", h.Create)
	g.PUT("/tasklist/:tasklistId/tasks/:taskId/steps/:stepId", h.Replace)
	g.DELETE("/tasklist/:tasklistId/tasks/:taskId/steps/:stepId", h.Delete)
}
