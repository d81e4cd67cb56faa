package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	logger *slog.Logger,
	allowedOrigins []string,
	JWTService jwt.Service,
	leaveHandler LeaveHandler,
	departmentHandler DepartmentHandler,
	reportHandler ReportHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "X-Report-Key", "X-Report-URL"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// EventSource authenticates with a short-lived query token
		r.Get("/events", eventHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/events/token", eventHandler.GetStreamToken)

			r.Route("/leave", func(r chi.Router) {
				r.Route("/types", func(r chi.Router) {
					r.Get("/", leaveHandler.ListTypes)
					r.Get("/{name}", leaveHandler.GetType)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionLeaveManageTypes))
						r.Post("/", leaveHandler.CreateType)
						r.Put("/{name}", leaveHandler.UpdateType)
						r.Delete("/{name}", leaveHandler.DeleteType)
					})
				})

				r.Route("/requests", func(r chi.Router) {
					r.Get("/my", leaveHandler.GetMyRequests)
					r.With(middleware.RequireRole(user.RoleAdmin, user.RoleManager)).Get("/", leaveHandler.ListRequests)
					r.Get("/{id}", leaveHandler.GetRequest)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionLeaveCreate))
						r.Post("/", leaveHandler.CreateRequest)
						r.Put("/{id}", leaveHandler.EditRequest)
						r.Delete("/{id}", leaveHandler.DeleteRequest)
					})

					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).
						Put("/{id}/{decision}", leaveHandler.DecideRequest)
				})

				r.Route("/summary", func(r chi.Router) {
					r.Get("/my", leaveHandler.GetMySummary)
					r.With(middleware.RequireManager).Get("/department", leaveHandler.GetDepartmentSummary)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", leaveHandler.GetSummary)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", departmentHandler.List)
				r.Get("/mine", departmentHandler.Mine)
				r.With(middleware.RequirePermission(user.PermissionDepartmentViewAll)).Get("/{name}", departmentHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentManage))
					r.Post("/", departmentHandler.Create)
					r.Delete("/{name}", departmentHandler.Delete)
					r.Put("/{name}/members/{username}", departmentHandler.AssignMember)
					r.Put("/{name}/managers/{username}", departmentHandler.AssignManager)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/department.pdf", reportHandler.ExportDepartmentSummary)
				r.Get("/archive", reportHandler.GetArchived)
			})
		})
	})
	return r
}
