package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/config"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/handlers"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/ledger"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/notify"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/routes"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/storage/gormstore"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

func main() {
	config.Load()
	config.ConnectDB()
	config.ConnectRedis()

	err := config.DB.AutoMigrate(
		&models.Student{},
		&models.FeeStructure{},
		&models.FeeReceipt{},
		&models.Installment{},
	)
	if err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	var sender notify.Sender
	if config.SendGridKey != "" {
		sender = notify.NewSendGridSender(config.SendGridKey, config.SenderName, config.SenderEmail)
	} else {
		slog.Warn("SENDGRID_API_KEY is not set, receipt emails go to the log")
		sender = notify.NewConsoleSender()
	}
	dispatcher := notify.NewDispatcher(sender, config.AppName)

	svc := ledger.NewService(gormstore.New(config.DB), dispatcher)

	r := gin.Default()
	routes.SetupRoutes(r, handlers.NewPaymentHandler(svc))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("Starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
