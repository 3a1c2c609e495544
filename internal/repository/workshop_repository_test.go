package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// dryRunDB opens a connectionless GORM handle that renders SQL without
// executing it, recording each generated query.
func dryRunDB(t *testing.T, queries *[]string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/test?charset=utf8mb4&parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*queries = append(*queries, tx.Statement.SQL.String())
	})
	if err != nil {
		t.Fatalf("register capture callback: %v", err)
	}
	return db
}

func lastQuery(t *testing.T, queries []string) string {
	t.Helper()
	if len(queries) == 0 {
		t.Fatal("no query was generated")
	}
	return queries[len(queries)-1]
}

func TestFindByIDForUpdate_GeneratesRowLock(t *testing.T) {
	var queries []string
	repo := NewWorkshopRepository(dryRunDB(t, &queries))

	repo.FindByIDForUpdate(context.Background(), uuid.New())

	assert.Contains(t, lastQuery(t, queries), "FOR UPDATE")
}

func TestFindByID_TakesNoLock(t *testing.T) {
	var queries []string
	repo := NewWorkshopRepository(dryRunDB(t, &queries))

	repo.FindByID(context.Background(), uuid.New())

	assert.NotContains(t, lastQuery(t, queries), "FOR UPDATE")
}
