package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/campuspulse/console/internal/config"
	"github.com/campuspulse/console/internal/http/handlers"
	"github.com/campuspulse/console/internal/http/middleware"
	"github.com/campuspulse/console/internal/service"
)

func Router(cfg config.Config, session *service.Session, board *service.Board, poller *service.Poller, gateway *service.Gateway, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Session:   session,
		Board:     board,
		Poller:    poller,
		Gateway:   gateway,
		Validator: validator.New(),
		Logger:    logger,
		AdminKey:  cfg.AdminKey,
		AdminUser: cfg.AdminUser,
		AdminPass: cfg.AdminPass,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/login", h.Login)
		api.POST("/feedback", h.SubmitFeedback)
		api.POST("/feedback/upload", h.UploadFeedback)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/session", h.SessionState)
		admin.POST("/session/view", h.SetView)
		admin.PATCH("/feedback/:id/resolve", h.ResolveFeedback)
		admin.POST("/tasks/escalate", h.EscalateTask)
		admin.GET("/tasks", h.TasksList)
		admin.PATCH("/tasks/:id/status", h.AdvanceTask)
		admin.DELETE("/tasks/:id", h.RemoveTask)
	}

	return r
}
