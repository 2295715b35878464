package main

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joy095/consult/clients"
	"github.com/joy095/consult/config"
	"github.com/joy095/consult/config/db"
	redisclient "github.com/joy095/consult/config/redis"
	"github.com/joy095/consult/controllers/notification_controller"
	"github.com/joy095/consult/logger"
	"github.com/joy095/consult/middlewares/cors"
	"github.com/joy095/consult/queue"
	"github.com/joy095/consult/routes"
	"github.com/joy095/consult/utils/mail"
)

//go:embed templates/email/*
var embeddedEmailTemplates embed.FS

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	db.Connect()
	defer db.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	mail.InitTemplates(embeddedEmailTemplates)
	logger.InfoLogger.Info("Application: Email templates initialized.")

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	pushClient := clients.NewExpoPushClient()

	var pushQueue *queue.PushQueue
	redisClient, err := redisclient.GetRedisClient(workerCtx)
	if err != nil {
		logger.ErrorLogger.Errorf("Redis unavailable, push notifications will be sent inline: %v", err)
	} else {
		defer redisclient.CloseRedis()
		pushQueue, err = queue.NewPushQueue(redisClient, queue.PushQueueConfig{})
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to build push queue: %v", err)
		} else {
			go pushQueue.Run(workerCtx, pushClient)
			logger.InfoLogger.Info("Push queue worker started")
		}
	}

	dispatcher := notification_controller.NewDispatcher(db.DB, pushQueue, pushClient, os.Getenv("SMTP_HOST") != "")

	rtcSecret := os.Getenv("RTC_APP_SECRET")
	if rtcSecret == "" {
		logger.WarnLogger.Warn("RTC_APP_SECRET is not set, session join tokens use a development secret")
		rtcSecret = "dev-rtc-secret"
	}
	tokenBuilder := clients.NewRTCTokenBuilder(rtcSecret, 0)

	razorpayClient := clients.NewRazorpayClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
	webhookSecret := os.Getenv("RAZORPAY_WEBHOOK_SECRET")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())

	routes.RegisterBookingRoutes(r, dispatcher)
	routes.RegisterFeedbackRoutes(r)
	routes.RegisterNotificationRoutes(r)
	routes.RegisterSessionRoutes(r, tokenBuilder)
	routes.RegisterPaymentRoutes(r, razorpayClient, webhookSecret)
	routes.RegisterUserRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok from consult service"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		fmt.Printf("Go Server listening on :%s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server failed to listen: %v\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("Shutting down Go server...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Go Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Go Server exited gracefully.")
}
