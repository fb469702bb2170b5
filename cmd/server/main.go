package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"projectdesk/handlers"
	"projectdesk/logging"
	"projectdesk/repositories"
	"projectdesk/services"
	"projectdesk/utils"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logging.InitLogger()
	logging.Logger.Info("Starting projectdesk server...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("No .env file loaded: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logging.Logger.Fatal("JWT_SECRET is not set in the environment variables")
	}

	mongoURI := envOr("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOr("MONGO_DB_NAME", "projectdesk")
	collectionName := envOr("MONGO_COLLECTION", "users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("MongoDB connection failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("MongoDB ping failed: %v", err)
	}
	logging.Logger.Infof("Connected to MongoDB, using %s/%s", dbName, collectionName)

	userRepo := repositories.NewMongoUserRepo(client.Database(dbName).Collection(collectionName))
	jwtService := services.NewJWTService(jwtSecret)
	mailer := utils.NewSMTPMailer(
		envOr("SMTP_HOST", "smtp.gmail.com"),
		os.Getenv("SMTP_PORT"),
		os.Getenv("EMAIL_FROM"),
		os.Getenv("EMAIL_PASSWORD"),
	)
	if mailer == nil {
		logging.Logger.Warn("SMTP not configured, registrations will skip verification mail")
	}

	userService := services.NewUserService(userRepo, jwtService, mailerOrNil(mailer), os.Getenv("CLIENT_URL"))
	projectService := services.NewProjectService(userRepo)
	taskService := services.NewTaskService(userRepo)

	router := handlers.NewRouter(
		handlers.NewAuthHandler(userService),
		handlers.NewProjectHandler(projectService),
		handlers.NewTaskHandler(taskService),
		jwtService,
	)

	// Accounts whose verification window lapsed get purged in the background.
	janitor := cron.New()
	if _, err := janitor.AddFunc("@hourly", func() {
		purgeCtx, purgeCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer purgeCancel()
		userService.PurgeExpiredUnverified(purgeCtx)
	}); err != nil {
		logging.Logger.Fatalf("Failed to schedule unverified-user janitor: %v", err)
	}
	janitor.Start()
	defer janitor.Stop()

	allowedOrigin := envOr("ALLOWED_ORIGIN", "*")
	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{allowedOrigin}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := envOr("SERVER_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      cors(router),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Server listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logging.Logger.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Graceful shutdown failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// mailerOrNil keeps a typed-nil *SMTPMailer from sneaking into the EmailSender
// interface, where it would no longer compare equal to nil.
func mailerOrNil(m *utils.SMTPMailer) services.EmailSender {
	if m == nil {
		return nil
	}
	return m
}
