package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/netaccess"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/middleware"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	JWTService        jwt.Service
	NetAccessService  netaccess.NetAccessService
	AuthHandler       AuthHandler
	AttendanceHandler AttendanceHandler
	EmployeeHandler   EmployeeHandler
	LeaveHandler      LeaveHandler
	ReportHandler     ReportHandler
	NetAccessHandler  NetAccessHandler
	PolicyHandler     PolicyHandler
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffsync-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", deps.AuthHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", deps.AuthHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", deps.AuthHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {

				// Clock endpoints only accept requests from the office network
				r.Group(func(r chi.Router) {
					r.Use(middleware.OfficeNetworkOnly(deps.NetAccessService))
					r.Post("/check-in", deps.AttendanceHandler.CheckIn)
					r.Post("/check-out", deps.AttendanceHandler.CheckOut)
					r.Post("/break-in", deps.AttendanceHandler.BreakStart)
					r.Post("/break-out", deps.AttendanceHandler.BreakEnd)
				})

				r.Get("/today", deps.AttendanceHandler.Today)
				r.Get("/me", deps.AttendanceHandler.GetMyAttendance)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", deps.LeaveHandler.ListTypes)
				r.Get("/balances", deps.LeaveHandler.MyBalances)

				r.Route("/requests", func(r chi.Router) {
					r.Get("/", deps.LeaveHandler.MyRequests)
					r.Post("/", deps.LeaveHandler.Apply)
					r.Put("/{id}", deps.LeaveHandler.UpdateRequest)
					r.Delete("/{id}", deps.LeaveHandler.DeleteMyRequest)
				})
			})

			r.Get("/reports/monthly", deps.ReportHandler.Monthly)
			r.Get("/policies", deps.PolicyHandler.List)
			r.Get("/holidays", deps.PolicyHandler.ListHolidays)

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", deps.EmployeeHandler.List)
					r.Post("/", deps.EmployeeHandler.Create)
					r.Get("/{employeeCode}", deps.EmployeeHandler.Get)
					r.Put("/{employeeCode}", deps.EmployeeHandler.Update)
					r.Delete("/{employeeCode}", deps.EmployeeHandler.Delete)
					r.Get("/{employeeCode}/attendance", deps.AttendanceHandler.ListByEmployeeCode)
					r.Get("/{employeeCode}/report", deps.ReportHandler.ForEmployee)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", deps.AttendanceHandler.List)
					r.Put("/{id}", deps.AttendanceHandler.Update)
					r.Delete("/{id}", deps.AttendanceHandler.Delete)
					r.Put("/breaks/{id}", deps.AttendanceHandler.UpdateBreak)
					r.Delete("/breaks/{id}", deps.AttendanceHandler.DeleteBreak)
				})

				r.Route("/leave-requests", func(r chi.Router) {
					r.Get("/", deps.LeaveHandler.ListRequests)
					r.Put("/{id}/status", deps.LeaveHandler.SetStatus)
					r.Delete("/{id}", deps.LeaveHandler.DeleteRequest)
				})

				r.Route("/ip-ranges", func(r chi.Router) {
					r.Get("/", deps.NetAccessHandler.List)
					r.Post("/", deps.NetAccessHandler.Create)
					r.Put("/{id}", deps.NetAccessHandler.Update)
					r.Delete("/{id}", deps.NetAccessHandler.Delete)
				})

				r.Route("/policies", func(r chi.Router) {
					r.Get("/", deps.PolicyHandler.List)
					r.Post("/", deps.PolicyHandler.Upload)
					r.Delete("/{id}", deps.PolicyHandler.Delete)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", deps.PolicyHandler.ListHolidays)
					r.Post("/", deps.PolicyHandler.CreateHoliday)
					r.Delete("/{id}", deps.PolicyHandler.DeleteHoliday)
				})

				r.Get("/reports/summary", deps.ReportHandler.Company)
			})
		})
	})
	return r
}
