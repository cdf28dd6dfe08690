package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BadrBouzakri/conges/internal/domain"
	"github.com/BadrBouzakri/conges/internal/holiday"
	"github.com/BadrBouzakri/conges/internal/leavebalance"
	"github.com/BadrBouzakri/conges/internal/leavetype"
	"github.com/BadrBouzakri/conges/internal/shared/connection"
	"github.com/BadrBouzakri/conges/internal/user"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&user.User{},
		&leavetype.LeaveType{},
		&leavebalance.LeaveBalance{},
		&holiday.Holiday{},
	); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	if err := seedAll(gormDB, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	logger.Info("seeding complete")
}

func seedAll(db *gorm.DB, logger *zap.Logger) error {
	leaveTypes := []leavetype.LeaveType{
		{Name: "Congés payés", Description: "Congés annuels payés", DefaultDays: 25, RequiresBalance: true, IsActive: true},
		{Name: "Repos compensatoire", Description: "Repos pour compenser les heures supplémentaires", DefaultDays: 0, RequiresBalance: true, IsActive: true},
		{Name: "Congé maladie", Description: "Absence pour raison de santé avec justificatif médical", DefaultDays: 0, RequiresBalance: false, IsActive: true},
		{Name: "Congé sans solde", Description: "Congé accordé sans rémunération", DefaultDays: 0, RequiresBalance: false, IsActive: true},
	}
	byName := make(map[string]leavetype.LeaveType, len(leaveTypes))
	for _, lt := range leaveTypes {
		if err := db.Where(leavetype.LeaveType{Name: lt.Name}).FirstOrCreate(&lt).Error; err != nil {
			return fmt.Errorf("seed leave type %q: %w", lt.Name, err)
		}
		byName[lt.Name] = lt
		logger.Info("leave type ready", zap.String("name", lt.Name))
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []user.User{
		{Email: "admin@example.com", Password: string(hashed), FirstName: "Admin", LastName: "User", Role: domain.RoleAdmin, IsActive: true},
		{Email: "approver1@example.com", Password: string(hashed), FirstName: "Sophie", LastName: "Martin", Role: domain.RoleApprover, IsActive: true},
		{Email: "employee1@example.com", Password: string(hashed), FirstName: "Julien", LastName: "Durand", Role: domain.RoleEmployee, IsActive: true},
	}
	year := time.Now().Year()
	paid := byName["Congés payés"]

	for _, u := range users {
		if err := db.Where(user.User{Email: u.Email}).FirstOrCreate(&u).Error; err != nil {
			return fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		logger.Info("user ready", zap.String("email", u.Email), zap.String("role", string(u.Role)))

		balance := leavebalance.LeaveBalance{
			UserID:      u.ID,
			LeaveTypeID: paid.ID,
			Year:        year,
			Balance:     paid.DefaultDays,
		}
		if err := db.Where(leavebalance.LeaveBalance{
			UserID:      u.ID,
			LeaveTypeID: paid.ID,
			Year:        year,
		}).FirstOrCreate(&balance).Error; err != nil {
			return fmt.Errorf("seed balance for %q: %w", u.Email, err)
		}
	}

	holidays := []holiday.Holiday{
		{Date: fmt.Sprintf("%d-01-01", year), Name: "Jour de l'an"},
		{Date: fmt.Sprintf("%d-05-01", year), Name: "Fête du travail"},
		{Date: fmt.Sprintf("%d-07-14", year), Name: "Fête nationale"},
		{Date: fmt.Sprintf("%d-12-25", year), Name: "Noël"},
	}
	for _, h := range holidays {
		if err := db.Where(holiday.Holiday{Date: h.Date}).FirstOrCreate(&h).Error; err != nil {
			return fmt.Errorf("seed holiday %q: %w", h.Date, err)
		}
	}
	logger.Info("holidays ready", zap.Int("count", len(holidays)))

	return nil
}
