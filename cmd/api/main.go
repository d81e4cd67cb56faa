package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/config"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/leave-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/sqlite"
	departmentService "github.com/cmlabs-hris/leave-backend-go/internal/service/department"
	leaveService "github.com/cmlabs-hris/leave-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/leave-backend-go/internal/service/notification"
	reportService "github.com/cmlabs-hris/leave-backend-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

type repositories struct {
	leaveTypes    leave.LeaveTypeRepository
	leaveRequests leave.LeaveRequestRepository
	departments   department.DepartmentRepository
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to open storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		slog.Error("Failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("Failed to initialize local storage", "error", err)
		os.Exit(1)
	}

	notifier := notificationService.NewNotificationService(sse.NewHub(), notificationService.Config{})
	defer notifier.Stop()

	leaveSvc := leaveService.NewLeaveService(repos.leaveTypes, repos.leaveRequests, repos.departments, notifier)
	departmentSvc := departmentService.NewDepartmentService(repos.departments)
	reportSvc := reportService.NewReportService(leaveSvc, repos.departments, fileStorage)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(leaveSvc).RegisterJobs(scheduler, cfg.Jobs.OrphanScanInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		logger,
		cfg.App.AllowedOrigins,
		JWTService,
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewDepartmentHandler(departmentSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewEventHandler(notifier, JWTService),
	)

	server := appHTTP.NewServer(ctx, fmt.Sprintf(":%d", cfg.App.Port), router)

	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("env", app.Env),
	)
}

func openRepositories(ctx context.Context, cfg config.DatabaseConfig) (repositories, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.DriverPostgres:
		dsn := (&config.Config{Database: cfg}).DatabaseURL()
		db, err := database.NewPostgreSQLDB(ctx, dsn)
		if err != nil {
			return repositories{}, err
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return repositories{}, err
		}
		return repositories{
			leaveTypes:    postgresql.NewLeaveTypeRepository(db),
			leaveRequests: postgresql.NewLeaveRequestRepository(db),
			departments:   postgresql.NewDepartmentRepository(db),
			close:         db.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			leaveTypes:    sqlite.NewLeaveTypeRepository(db),
			leaveRequests: sqlite.NewLeaveRequestRepository(db),
			departments:   sqlite.NewDepartmentRepository(db),
			close:         func() { db.Close() },
		}, nil
	case config.DriverMemory:
		store := memory.NewStore()
		return repositories{
			leaveTypes:    memory.NewLeaveTypeRepository(store),
			leaveRequests: memory.NewLeaveRequestRepository(store),
			departments:   memory.NewDepartmentRepository(store),
			close:         func() {},
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}
