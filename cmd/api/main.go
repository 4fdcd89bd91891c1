package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/config"
	"github.com/staffsync/attendance-backend-go/internal/fixtures"
	appHTTP "github.com/staffsync/attendance-backend-go/internal/handler/http"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cron"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/pkg/oauth"
	"github.com/staffsync/attendance-backend-go/internal/pkg/storage"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffsync/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/staffsync/attendance-backend-go/internal/service/auth"
	employeeService "github.com/staffsync/attendance-backend-go/internal/service/employee"
	leaveService "github.com/staffsync/attendance-backend-go/internal/service/leave"
	netaccessService "github.com/staffsync/attendance-backend-go/internal/service/netaccess"
	policyService "github.com/staffsync/attendance-backend-go/internal/service/policy"
	reportService "github.com/staffsync/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	ipRangeRepo := postgresql.NewIPRangeRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	// Seed the leave catalogue before any employee can be created
	if err := fixtures.EnsureDefaultLeaveTypes(context.Background(), leaveTypeRepo); err != nil {
		log.Fatal("Failed to seed leave types: ", err)
	}

	authSvc := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	attendanceSvc := attendanceService.NewAttendanceService(db, loc, attendanceRepo, breakRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, employeeRepo)
	netAccessSvc := netaccessService.NewNetAccessService(db, ipRangeRepo, cfg.Gate.AllowLoopback)
	policySvc := policyService.NewPolicyService(policyRepo, holidayRepo, fileStorage)
	reportSvc := reportService.NewReportService(attendanceRepo, leaveRequestRepo, employeeRepo, loc)

	// Background job closing sessions left open past their day
	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, breakRepo, employeeRepo, db, loc)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:        JWTService,
		NetAccessService:  netAccessSvc,
		AuthHandler:       appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL),
		AttendanceHandler: appHTTP.NewAttendanceHandler(attendanceSvc),
		EmployeeHandler:   appHTTP.NewEmployeeHandler(employeeSvc),
		LeaveHandler:      appHTTP.NewLeaveHandler(leaveSvc),
		ReportHandler:     appHTTP.NewReportHandler(reportSvc),
		NetAccessHandler:  appHTTP.NewNetAccessHandler(netAccessSvc),
		PolicyHandler:     appHTTP.NewPolicyHandler(policySvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
