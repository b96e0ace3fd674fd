package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"task-service/internal/auth"
	"task-service/internal/handlers"
	"task-service/internal/middleware"
	"task-service/internal/observability"
	"task-service/internal/rabbitmq"
	"task-service/internal/repositories"
	"task-service/internal/storage"
	"task-service/internal/store"
	"task-service/internal/telemetry"
	"task-service/internal/ws"
)

func main() {
	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, "task-service")
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown failed: %v", err)
		}
	}()

	db, err := store.Open(getEnv("DB_PATH", "data/db.json"))
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		log.Fatalf("invalid TOKEN_TTL: %v", err)
	}
	tokens := auth.NewTokenService(getEnv("JWT_SECRET", "supersecretkey"), tokenTTL)

	uploads, err := storage.NewLocalStorage(getEnv("UPLOAD_DIR", "uploads"), "/uploads")
	if err != nil {
		log.Fatalf("failed to set up upload storage: %v", err)
	}

	amqpURL := getEnv("RABBITMQ_URL", "")
	publisher := rabbitmq.NewPublisher(amqpURL, getEnv("RABBITMQ_EXCHANGE", "task_events"))
	defer publisher.Close()
	log.Printf("audit publisher mode=%s", rabbitmq.PublisherMode(publisher))

	audit := telemetry.NewAuditEmitter(
		publisher,
		getEnv("AUDIT_ROUTING_KEY", "audit.task-service"),
		"task-service",
		getEnv("ENVIRONMENT", "development"),
	)

	if amqpURL != "" {
		wsPublisher, err := observability.NewAMQPPublisher(amqpURL, getEnv("WS_EVENTS_EXCHANGE", "ws_events"))
		if err != nil {
			log.Printf("ws events publisher disabled: %v", err)
		} else {
			defer wsPublisher.Close()
			observability.SetPublisher(wsPublisher)
		}
	}

	userRepo := repositories.NewUserRepo(db)
	groupRepo := repositories.NewGroupRepo(db)
	messageRepo := repositories.NewMessageRepo(db)
	taskRepo := repositories.NewTaskRepo(db)
	activityRepo := repositories.NewActivityRepo(db)
	notificationRepo := repositories.NewNotificationRepo(db)

	hub := ws.NewHub()

	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	taskHandler := handlers.NewTaskHandler(taskRepo, activityRepo, notificationRepo, audit)
	groupHandler := handlers.NewGroupHandler(groupRepo, audit)
	chatHandler := handlers.NewChatHandler(groupRepo, messageRepo, userRepo, uploads, audit)
	notificationHandler := handlers.NewNotificationHandler(taskRepo, notificationRepo)
	activityHandler := handlers.NewActivityHandler(activityRepo)

	chatWS := ws.NewChatWebSocketHandler(hub, groupRepo, userRepo, tokens)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware("task-service"))

	authMiddleware := middleware.AuthMiddleware(tokens)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Smart Task Manager backend is running"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/uploads", getEnv("UPLOAD_DIR", "uploads"))

	router.POST("/auth/signup", authHandler.Signup)
	router.POST("/auth/login", authHandler.Login)
	router.GET("/auth/me", authMiddleware, authHandler.Me)
	router.GET("/auth/users", authMiddleware, authHandler.ListUsers)

	router.GET("/tasks", authMiddleware, taskHandler.ListTasks)
	router.POST("/tasks", authMiddleware, taskHandler.CreateTask)
	router.PUT("/tasks/:task_id", authMiddleware, taskHandler.UpdateTask)
	router.DELETE("/tasks/:task_id", authMiddleware, taskHandler.DeleteTask)

	router.GET("/groups", authMiddleware, groupHandler.ListGroups)
	router.POST("/groups", authMiddleware, groupHandler.CreateGroup)
	router.DELETE("/groups/:group_id", authMiddleware, groupHandler.DeleteGroup)

	router.POST("/chat/upload", chatHandler.Upload)
	router.GET("/chat/:group_id", authMiddleware, chatHandler.GetMessages)
	router.POST("/chat/:group_id", authMiddleware, chatHandler.PostMessage)
	router.GET("/chat/ws/:group_id", chatWS.Handle)

	router.GET("/notifications", authMiddleware, notificationHandler.ListAlerts)
	router.GET("/notifications/inbox", authMiddleware, notificationHandler.Inbox)

	router.GET("/activity/:task_id", authMiddleware, activityHandler.GetTaskActivity)

	handlers.RegisterDebugRoutes(router, audit, getEnv("DEBUG_ROUTES", "") == "true")

	port := getEnv("PORT", "8000")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
