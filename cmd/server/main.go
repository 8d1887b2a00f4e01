package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/lromero/cajaclinic/internal/api"
	"github.com/lromero/cajaclinic/internal/api/controller"
	"github.com/lromero/cajaclinic/internal/config"
	"github.com/lromero/cajaclinic/internal/infrastructure/database"
	"github.com/lromero/cajaclinic/internal/repository"
	"github.com/lromero/cajaclinic/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	db := database.NewMySQLConnection(conf.Database.DSN)

	if conf.Server.Port != ":8080" {
		gin.SetMode(gin.ReleaseMode)
	}

	cutRepo := repository.NewCutRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	userRepo := repository.NewUserRepository(db)

	cutSvc := service.NewCutService(cutRepo, expenseRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	reportSvc := service.NewReportService(cutRepo, expenseRepo)
	authSvc := service.NewAuthService(userRepo)

	r := gin.Default()
	api.RegisterRoutes(r,
		controller.NewAuthController(authSvc),
		controller.NewCutController(cutSvc),
		controller.NewExpenseController(expenseSvc),
		controller.NewReportController(reportSvc),
		conf.Auth.EnforceAdminRole,
	)

	slog.Info("caja server starting", "port", conf.Server.Port)
	if err := r.Run(conf.Server.Port); err != nil {
		slog.Error("server exited", "error", err)
	}
}
