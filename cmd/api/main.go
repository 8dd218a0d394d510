package main

import (
	"fmt"
	"net/http"

	"github.com/staffbook/staffbook-backend-go/internal/config"
	appHTTP "github.com/staffbook/staffbook-backend-go/internal/handler/http"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/cache"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/clock"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/database"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/jwt"
	"github.com/staffbook/staffbook-backend-go/internal/repository/postgresql"
	advanceService "github.com/staffbook/staffbook-backend-go/internal/service/advance"
	attendanceService "github.com/staffbook/staffbook-backend-go/internal/service/attendance"
	authService "github.com/staffbook/staffbook-backend-go/internal/service/auth"
	hikeService "github.com/staffbook/staffbook-backend-go/internal/service/hike"
	lifecycleService "github.com/staffbook/staffbook-backend-go/internal/service/lifecycle"
	payrollService "github.com/staffbook/staffbook-backend-go/internal/service/payroll"
	staffService "github.com/staffbook/staffbook-backend-go/internal/service/staff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	readCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	clk := clock.System()

	userRepo := postgresql.NewUserRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	hikeRepo := postgresql.NewHikeRepository(db)
	archiveRepo := postgresql.NewArchiveRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	authSvc := authService.NewAuthService(userRepo, sessionRepo, jwtService, clk)
	staffSvc := staffService.NewStaffService(db, staffRepo, hikeRepo, readCache, clk)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, staffRepo, clk)
	advanceSvc := advanceService.NewAdvanceService(advanceRepo)
	hikeSvc := hikeService.NewHikeService(hikeRepo)
	lifecycleSvc := lifecycleService.NewLifecycleService(archiveRepo, staffRepo, advanceRepo, attendanceRepo, readCache, clk)
	payrollSvc := payrollService.NewPayrollService(staffRepo, attendanceRepo, advanceRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	staffHandler := appHTTP.NewStaffHandler(staffSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	advanceHandler := appHTTP.NewAdvanceHandler(advanceSvc)
	hikeHandler := appHTTP.NewHikeHandler(hikeSvc)
	lifecycleHandler := appHTTP.NewLifecycleHandler(lifecycleSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
		},
		jwtService,
		authHandler,
		staffHandler,
		attendanceHandler,
		advanceHandler,
		hikeHandler,
		lifecycleHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
