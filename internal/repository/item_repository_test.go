package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder captures the last generated statement so tests can assert on the
// SQL without a live database.
type sqlRecorder struct {
	last string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	r.last, _ = fc()
}

// newDryRunDB opens a gorm handle that builds SQL without ever touching a
// server.
func newDryRunDB(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:password@tcp(localhost:3306)/homeneeds_test?charset=utf8mb4&parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestItemRepository_FindByOwnerAndIDForUpdate_LocksRow(t *testing.T) {
	rec := &sqlRecorder{}
	repo := NewItemRepository(newDryRunDB(t, rec))

	_, _ = repo.FindByOwnerAndIDForUpdate(context.Background(), 1, 10)

	assert.Contains(t, rec.last, "FOR UPDATE")
	assert.Contains(t, rec.last, "user_id")
}

func TestDeletedItemRepository_FindByOwnerAndIDForUpdate_LocksRow(t *testing.T) {
	rec := &sqlRecorder{}
	repo := &deletedItemRepository{db: newDryRunDB(t, rec)}

	_, _ = repo.FindByOwnerAndIDForUpdate(context.Background(), 1, 7)

	assert.Contains(t, rec.last, "FOR UPDATE")
	assert.Contains(t, rec.last, "user_id")
}

func TestItemRepository_UnlockedReadsStayUnlocked(t *testing.T) {
	rec := &sqlRecorder{}
	repo := NewItemRepository(newDryRunDB(t, rec))

	_, _ = repo.FindByOwnerNameCategory(context.Background(), 1, "Tomato", "vegfruit")

	assert.NotContains(t, rec.last, "FOR UPDATE")
}
