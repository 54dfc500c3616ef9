package mysql

import (
	"testing"
	"time"

	accDomain "agrocredito/internal/domain/account"
	appDomain "agrocredito/internal/domain/application"
	docDomain "agrocredito/internal/domain/document"
	progDomain "agrocredito/internal/domain/program"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a migrated in-memory sqlite db pinned to a single connection.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&appDomain.Application{},
		&progDomain.Program{},
		&accDomain.Account{},
		&accDomain.Payment{},
		&docDomain.Document{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeApplication(appID, owner string, pt appDomain.ProjectType, amount int64) *appDomain.Application {
	return &appDomain.Application{
		ApplicationID:   appID,
		Reference:       "AC-" + appID,
		OwnerID:         owner,
		ProjectName:     "Maize expansion",
		ProjectType:     pt,
		RequestedAmount: decimal.NewFromInt(amount),
		TermMonths:      12,
		Status:          appDomain.StatusPending,
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func makeAccount(accID string, appNumericID uint64) *accDomain.Account {
	next := time.Date(2026, 11, 19, 0, 0, 0, 0, time.UTC)
	return &accDomain.Account{
		AccountID:          accID,
		ApplicationID:      appNumericID,
		Principal:          decimal.NewFromInt(500000),
		AnnualRate:         decimal.NewFromInt(12),
		TermMonths:         12,
		TotalAmount:        decimal.NewFromInt(533088),
		OutstandingBalance: decimal.NewFromInt(533088),
		MonthlyPayment:     decimal.NewFromInt(44424),
		NextPaymentDate:    &next,
		Status:             accDomain.StatusActive,
	}
}
