package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/staffloom/attendance-backend-go/internal/config"
	appHTTP "github.com/staffloom/attendance-backend-go/internal/handler/http"
	"github.com/staffloom/attendance-backend-go/internal/pkg/cache"
	"github.com/staffloom/attendance-backend-go/internal/pkg/cron"
	"github.com/staffloom/attendance-backend-go/internal/pkg/database"
	"github.com/staffloom/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffloom/attendance-backend-go/internal/pkg/lock"
	"github.com/staffloom/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffloom/attendance-backend-go/internal/service/attendance"
	leaveService "github.com/staffloom/attendance-backend-go/internal/service/leave"
	"github.com/staffloom/attendance-backend-go/internal/service/policy"
	"github.com/staffloom/attendance-backend-go/internal/service/reconcile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	locks := lock.NewManager(cfg.Attendance.LockTimeout)
	memo := cache.New(cfg.Attendance.AllocationCacheTTL, cfg.Attendance.FinalizationCacheTTL)
	policyResolver := policy.NewResolver(settingsRepo)

	ledger := leaveService.NewLedgerService(employeeRepo, ledgerRepo, settingsRepo, memo)
	reconciler := reconcile.NewReconciler(
		employeeRepo,
		ledger,
		locks,
		cfg.Attendance.ReconcileWorkers,
		cfg.Attendance.ReconcileQueueSize,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		txManager,
		attendanceRepo,
		employeeRepo,
		locationRepo,
		settingsRepo,
		ledger,
		ledgerRepo,
		policyResolver,
		locks,
		reconciler,
		cfg.Attendance,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	router := appHTTP.NewRouter(jwtService, attendanceHandler)

	reconciler.Start()
	defer reconciler.Stop()

	scheduler := cron.New()
	scheduler.Every(cfg.Attendance.SweepInterval, "reconcile-sweep", reconciler.SweepPreviousMonth)
	scheduler.Start()
	defer scheduler.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	go func() {
		if err := http.ListenAndServe(port, router); err != nil {
			fmt.Println("Server error:", err)
			stop <- syscall.SIGTERM
		}
	}()

	<-stop
}
