package shows

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dryRunDB opens a gorm session that builds SQL without executing it
// and without touching the network.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.Open("host=localhost user=cinebook dbname=cinebook"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open dry-run session: %v", err)
	}
	return db
}

func TestMarkSeatsBookedReadTakesRowLock(t *testing.T) {
	db := dryRunDB(t)
	repo := &repository{db: db}

	var show Show
	stmt := repo.lockedShow(db, uuid.New()).Find(&show).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("show read is not locked, two confirmations could interleave: %s", sql)
	}
	if !strings.Contains(sql, "seat_map") {
		t.Errorf("locked read does not select the seat map: %s", sql)
	}
	if !strings.Contains(sql, "seat_count") {
		t.Errorf("locked read does not select the seat count: %s", sql)
	}
}
