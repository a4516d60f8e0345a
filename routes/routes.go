package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jkz07/transcare/config"
	"github.com/jkz07/transcare/database"
	"github.com/jkz07/transcare/internal/agenda"
	"github.com/jkz07/transcare/internal/auditlog"
	"github.com/jkz07/transcare/internal/auth"
	"github.com/jkz07/transcare/internal/community"
	"github.com/jkz07/transcare/internal/contact"
	"github.com/jkz07/transcare/internal/notification"
	"github.com/jkz07/transcare/internal/reports"
	"github.com/jkz07/transcare/internal/userprofile"
	"github.com/jkz07/transcare/middleware"

	_ "github.com/jkz07/transcare/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires every feature onto the router: repositories over database.DB,
// services on top, handlers on the /api/v1 groups.
func Setup(r *gin.Engine, cfg *config.Config) notification.Service {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	// ========== Contact (public) ==========
	contactSvc := contact.NewService(database.DB)
	contactHandler := contact.NewHandler(contactSvc)
	api.POST("/contact", contactHandler.Submit)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Profile ==========
	profileRepo := userprofile.NewRepository(database.DB)
	profileSvc := userprofile.NewService(profileRepo, authRepo, auditSvc)
	profileHandler := userprofile.NewHandler(profileSvc)

	protected.GET("/profile", profileHandler.GetMyProfile)
	protected.PUT("/profile", profileHandler.UpdateMyProfile)

	// ========== Agenda ==========
	agendaRepo := agenda.NewRepository(database.DB)
	agendaSvc := agenda.NewService(agendaRepo, auditSvc)
	agendaHandler := agenda.NewHandler(agendaSvc)

	agendaGroup := protected.Group("/agenda")
	{
		agendaGroup.GET("/events", agendaHandler.ListEvents)
		agendaGroup.GET("/events/:id", agendaHandler.GetEvent)
		agendaGroup.POST("/events", agendaHandler.CreateEvent)
		agendaGroup.PUT("/events/:id", agendaHandler.UpdateEvent)
		agendaGroup.DELETE("/events/:id", agendaHandler.DeleteEvent)

		agendaGroup.GET("/calendar", agendaHandler.Calendar)
		agendaGroup.GET("/day/:date", agendaHandler.Day)
		agendaGroup.GET("/upcoming", agendaHandler.Upcoming)
		agendaGroup.GET("/past", agendaHandler.Past)

		exportHandler := reports.NewHandler(agendaSvc, reports.NewExporter())
		agendaGroup.GET("/export", exportHandler.ExportAgenda)
	}

	// ========== Community ==========
	communityRepo := community.NewRepository(database.DB)
	communitySvc := community.NewService(communityRepo, auditSvc)
	communityHandler := community.NewHandler(communitySvc)

	communityGroup := protected.Group("/community")
	{
		communityGroup.GET("/events", communityHandler.ListEvents)
		communityGroup.GET("/events/:id", communityHandler.GetEvent)
		communityGroup.POST("/events", communityHandler.CreateEvent)
		communityGroup.PUT("/events/:id", communityHandler.UpdateEvent)
		communityGroup.DELETE("/events/:id", communityHandler.DeleteEvent)
		communityGroup.POST("/events/:id/attendance", communityHandler.Attend)
		communityGroup.DELETE("/events/:id/attendance", communityHandler.Unattend)
	}

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo)
	notifHandler := notification.NewHandler(notifSvc)

	protected.GET("/notifications", notifHandler.List)
	protected.PATCH("/notifications/:id/read", notifHandler.MarkRead)
	protected.PATCH("/notifications/read-all", notifHandler.MarkAllRead)

	// ========== Audit Logs ==========
	protected.GET("/auditlogs", auditHandler.GetMyActivity)

	return notifSvc
}
