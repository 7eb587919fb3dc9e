package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/teamstack/ems-backend-go/internal/config"
	appHTTP "github.com/teamstack/ems-backend-go/internal/handler/http"
	"github.com/teamstack/ems-backend-go/internal/pkg/database"
	"github.com/teamstack/ems-backend-go/internal/pkg/email"
	"github.com/teamstack/ems-backend-go/internal/pkg/jwt"
	"github.com/teamstack/ems-backend-go/internal/pkg/sse"
	"github.com/teamstack/ems-backend-go/internal/repository/postgresql"
	announcementService "github.com/teamstack/ems-backend-go/internal/service/announcement"
	attendanceService "github.com/teamstack/ems-backend-go/internal/service/attendance"
	authService "github.com/teamstack/ems-backend-go/internal/service/auth"
	leaderboardService "github.com/teamstack/ems-backend-go/internal/service/leaderboard"
	worksheetService "github.com/teamstack/ems-backend-go/internal/service/worksheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE:", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	worksheetRepo := postgresql.NewWorksheetRepository(db)
	leaderboardRepo := postgresql.NewLeaderboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	hub := sse.NewHub()

	authSvc := authService.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, loc)
	announcementSvc := announcementService.NewAnnouncementService(announcementRepo, userRepo, emailService, hub)
	worksheetSvc := worksheetService.NewWorksheetService(worksheetRepo)
	leaderboardSvc := leaderboardService.NewLeaderboardService(leaderboardRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	announcementHandler := appHTTP.NewAnnouncementHandler(announcementSvc, hub)
	worksheetHandler := appHTTP.NewWorksheetHandler(worksheetSvc)
	leaderboardHandler := appHTTP.NewLeaderboardHandler(leaderboardSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		announcementHandler,
		worksheetHandler,
		leaderboardHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
