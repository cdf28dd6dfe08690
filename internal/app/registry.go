package app

import (
	"database/sql"

	"github.com/BadrBouzakri/conges/internal/auth"
	"github.com/BadrBouzakri/conges/internal/holiday"
	"github.com/BadrBouzakri/conges/internal/leave"
	"github.com/BadrBouzakri/conges/internal/leavebalance"
	"github.com/BadrBouzakri/conges/internal/leavetype"
	"github.com/BadrBouzakri/conges/internal/messaging/kafka"
	"github.com/BadrBouzakri/conges/internal/rbac"
	"github.com/BadrBouzakri/conges/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	userService := user.NewService(userRepo)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo, rdb)
	holidayService := holiday.NewService(holidayRepo, rdb)
	balanceService := leavebalance.NewService(db, balanceRepo)
	leaveService := leave.NewService(db, leaveRepo, leaveTypeRepo, balanceRepo, holidayService, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	holidayHandler := holiday.NewHandler(holidayService)
	balanceHandler := leavebalance.NewHandler(balanceService)
	leaveHandler := leave.NewHandler(leaveService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leavebalance.RegisterRoutes(api, balanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
	}

	return nil
}
