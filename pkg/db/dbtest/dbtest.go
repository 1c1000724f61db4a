// Package dbtest opens throwaway sqlite databases carrying the full store schema.
package dbtest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
)

// Models lists every table the application owns, in dependency order.
var Models = []any{
	&models.User{},
	&models.Category{},
	&models.Product{},
	&models.Cart{},
	&models.CartItem{},
	&models.Order{},
	&models.OrderItem{},
	&models.Wishlist{},
	&models.WishlistItem{},
}

// Open returns a client over a private in-memory sqlite database. The pool is
// capped at one connection so concurrent units of work run one after another.
func Open(t testing.TB) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(Models...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db.NewFromGorm(conn)
}

// MustCreate inserts value or fails the test.
func MustCreate(t testing.TB, client *db.Client, value any) {
	t.Helper()
	if err := client.DB().Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

// BeforeUpdate runs fn once, on the first UPDATE against table, right before
// the statement reaches the database. fn shares the statement's connection or
// transaction, so it can stand in for a writer that committed just ahead.
func BeforeUpdate(t testing.TB, client *db.Client, table string, fn func(tx *gorm.DB)) {
	t.Helper()
	var once sync.Once
	name := "dbtest:before_update:" + uuid.NewString()
	err := client.DB().Callback().Update().Before("gorm:update").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		once.Do(func() { fn(tx.Session(&gorm.Session{NewDB: true})) })
	})
	if err != nil {
		t.Fatalf("register update hook: %v", err)
	}
}
