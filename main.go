package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	authpb "chat-delivery/pb/auth"
	convpb "chat-delivery/pb/conversation"

	"chat-delivery/internal/db"
	"chat-delivery/internal/directory"
	"chat-delivery/internal/distribution"
	grpcclient "chat-delivery/internal/grpc"
	"chat-delivery/internal/handlers"
	"chat-delivery/internal/ingest"
	"chat-delivery/internal/middleware"
	"chat-delivery/internal/observability"
	"chat-delivery/internal/queue"
	"chat-delivery/internal/rabbitmq"
	"chat-delivery/internal/repositories"
	"chat-delivery/internal/status"
	"chat-delivery/internal/telemetry"
	"chat-delivery/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	processID := getEnv("PROCESS_ID", uuid.NewString())
	environment := getEnv("ENVIRONMENT", "dev")

	shutdownTracing, err := observability.InitTracing(ctx, "chat-delivery", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""))
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	authAddr := getEnv("AUTH_GRPC_ADDR", "localhost:8084")
	convAddr := getEnv("CONVERSATION_GRPC_ADDR", "localhost:8086")

	authConn, err := grpc.Dial(authAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()))
	if err != nil {
		log.Fatalf("failed to connect to auth grpc: %v", err)
	}
	defer authConn.Close()

	convConn, err := grpc.Dial(convAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()))
	if err != nil {
		log.Fatalf("failed to connect to conversation grpc: %v", err)
	}
	defer convConn.Close()

	authClient := grpcclient.NewAuthClient(authpb.NewAuthServiceClient(authConn))
	convClient := grpcclient.NewConversationClient(convpb.NewConversationServiceClient(convConn))

	messageRepo := repositories.NewMessageRepo(database)
	statusRepo := repositories.NewStatusRepo(database)

	dirTTL := time.Duration(getEnvInt("DIRECTORY_TTL_SECONDS", 90)) * time.Second
	dir, err := directory.NewRedisDirectory(ctx, getEnv("REDIS_URL", "redis://localhost:6379/0"), processID, dirTTL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer dir.Close()

	amqpURL := getEnv("AMQP_URL", "")
	eventPublisher := rabbitmq.NewPublisher(amqpURL, getEnv("AMQP_EXCHANGE", "chat.events"))
	defer eventPublisher.Close()
	log.Printf("event publisher mode=%s reason=%q", rabbitmq.PublisherMode(eventPublisher), rabbitmq.PublisherNoopReason(eventPublisher))

	if amqpURL != "" {
		lifecyclePublisher, err := observability.NewAMQPPublisher(amqpURL, getEnv("AMQP_EXCHANGE", "chat.events"))
		if err != nil {
			log.Printf("lifecycle event publisher disabled: %v", err)
		} else {
			observability.SetPublisher(lifecyclePublisher)
			defer lifecyclePublisher.Close()
		}
	}

	audit := telemetry.NewAuditEmitter(eventPublisher, "audit.chat-delivery", "chat-delivery", environment)

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	topic := getEnv("KAFKA_TOPIC", "chat.distribution")
	bufferSize := getEnvInt("QUEUE_BUFFER_SIZE", 10000)

	producer, err := queue.NewProducer(brokers, topic, bufferSize, func(messageID string) {
		ackCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := messageRepo.MarkDistributed(ackCtx, messageID); err != nil {
			log.Printf("mark distributed failed message=%s: %v", messageID, err)
		}
	})
	if err != nil {
		log.Fatalf("failed to start producer: %v", err)
	}
	defer producer.Close()

	hub := ws.NewHub()
	tracker := status.NewTracker(statusRepo, producer, hub)
	router := distribution.NewRouter(hub, convClient, tracker)
	ingestService := ingest.NewService(messageRepo, statusRepo, convClient, producer, router, eventPublisher)

	groupID := "chat-delivery." + processID
	if err := queue.StartConsumer(ctx, brokers, groupID, topic, router.Handle); err != nil {
		log.Fatalf("failed to start consumer: %v", err)
	}

	sweepInterval := time.Duration(getEnvInt("SWEEP_INTERVAL_SECONDS", 15)) * time.Second
	ingestService.StartSweep(ctx, sweepInterval)

	gateway := ws.NewGatewayHandler(hub, ingestService, tracker, dir, authClient, audit)
	unreadHandler := handlers.NewUnreadHandler(tracker)

	engine := gin.Default()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware("chat-delivery"))
	engine.Use(observability.HTTPMetricsMiddleware())

	authMiddleware := middleware.AuthMiddleware(authClient)

	engine.GET("/ws", gateway.Handle)
	engine.GET("/unread", authMiddleware, unreadHandler.Summary)
	engine.GET("/conversations/:conversation_id/marker", authMiddleware, unreadHandler.Marker)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "process_id": processID})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDebugRoutes(engine, audit, messageRepo, dir, processID, getEnv("DEBUG_ROUTES", "") == "true")

	port := getEnv("PORT", "8083")
	server := &http.Server{Addr: ":" + port, Handler: engine}

	go func() {
		log.Printf("chat-delivery listening on :%s process_id=%s", port, processID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	tracker.Flush(shutdownCtx)
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}
