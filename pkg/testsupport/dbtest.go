package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-methodlib/pkg/storage"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var dsnReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_")

// NewSQLiteMemoryDB opens a shared-cache in-memory database private to name.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	sqldb, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", dsnReplacer.Replace(name)))
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	return sqldb, nil
}

// NewBunSQLite returns a bun handle over an in-memory database scoped to the
// running test, with tables created for models. The handle closes on cleanup.
func NewBunSQLite(t testing.TB, models ...any) *bun.DB {
	t.Helper()
	sqldb, err := NewSQLiteMemoryDB(t.Name())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = sqldb.Close()
	})

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := storage.EnsureSchema(ctx, db, models...); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}
