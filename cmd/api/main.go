package main

import (
	"fmt"
	"net/http"

	"github.com/workclock/attendance-engine-go/internal/config"
	appHTTP "github.com/workclock/attendance-engine-go/internal/handler/http"
	"github.com/workclock/attendance-engine-go/internal/pkg/cron"
	"github.com/workclock/attendance-engine-go/internal/pkg/database"
	"github.com/workclock/attendance-engine-go/internal/pkg/jwt"
	"github.com/workclock/attendance-engine-go/internal/repository/postgresql"
	attendanceService "github.com/workclock/attendance-engine-go/internal/service/attendance"
	holidayService "github.com/workclock/attendance-engine-go/internal/service/holiday"
	shiftService "github.com/workclock/attendance-engine-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, int32(cfg.Database.MaxConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	punchRepo := postgresql.NewPunchRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	reportService := attendanceService.NewReportService(
		cfg.App.BatchWorkers,
		punchRepo,
		recordRepo,
		employeeRepo,
		shiftRepo,
		holidayRepo,
		leaveRepo,
	)
	punchService := attendanceService.NewPunchService(punchRepo, employeeRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(reportService, punchService)
	referenceHandler := appHTTP.NewReferenceHandler(shiftSvc, holidaySvc)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		attendanceJobs := cron.NewAttendanceJobs(reportService, employeeRepo)
		attendanceJobs.RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		attendanceHandler,
		referenceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
