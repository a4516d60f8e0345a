package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jkz07/transcare/config"
	"github.com/jkz07/transcare/database"
	"github.com/jkz07/transcare/internal/agenda"
	"github.com/jkz07/transcare/internal/auditlog"
	"github.com/jkz07/transcare/internal/auth"
	"github.com/jkz07/transcare/internal/community"
	"github.com/jkz07/transcare/internal/contact"
	"github.com/jkz07/transcare/internal/notification"
	"github.com/jkz07/transcare/internal/userprofile"
	"github.com/jkz07/transcare/routes"
	"github.com/jkz07/transcare/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka (optional, no-op without brokers)
	utils.InitializeKafka(cfg)

	// Init SMTP mailer
	utils.InitMailer(cfg)

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&userprofile.Profile{},
		&agenda.Event{},
		&community.CommunityEvent{},
		&community.Attendance{},
		&notification.InAppNotification{},
		&contact.ContactMessage{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	notifSvc := routes.Setup(router, cfg)

	// Turn the domain event stream into in-app notifications
	notification.StartKafkaConsumer(notifSvc)

	fmt.Printf("🚀 TransCare API starting on port %s\n", cfg.Port)
	if utils.IsKafkaEnabled() {
		fmt.Println("✅ Kafka event publishing enabled")
	} else {
		fmt.Println("ℹ️ Kafka event publishing disabled")
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
