package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string `gorm:"uniqueIndex"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func countRows(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	conn := newTestDB(t)
	client := NewFromGorm(conn)

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}
	if got := countRows(t, conn); got != 1 {
		t.Fatalf("expected 1 record, got %d", got)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if got := countRows(t, conn); got != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", got)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	conn := newTestDB(t)
	client := NewFromGorm(conn)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			tx.Create(&testModel{Name: "panicky"})
			panic("boom")
		})
	}()

	if got := countRows(t, conn); got != 0 {
		t.Fatalf("expected panic to roll back, got %d rows", got)
	}
}

func TestUnitOfWork_RollbackAfterCommitIsNoop(t *testing.T) {
	conn := newTestDB(t)
	client := NewFromGorm(conn)

	uow, err := client.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := uow.Tx().Create(&testModel{Name: "kept"}).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := uow.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := uow.Rollback(); err != nil {
		t.Fatalf("rollback after commit should be a no-op, got %v", err)
	}
	if err := uow.Commit(); !errors.Is(err, ErrUnitOfWorkClosed) {
		t.Fatalf("expected closed error on second commit, got %v", err)
	}
	if got := countRows(t, conn); got != 1 {
		t.Fatalf("expected committed row to persist, got %d", got)
	}
}

func TestUnitOfWork_DeferredRollbackDiscards(t *testing.T) {
	conn := newTestDB(t)
	client := NewFromGorm(conn)

	work := func() error {
		uow, err := client.Begin(context.Background())
		if err != nil {
			return err
		}
		defer uow.Rollback()
		if err := uow.Tx().Create(&testModel{Name: "discarded"}).Error; err != nil {
			return err
		}
		return errors.New("early return")
	}
	if err := work(); err == nil {
		t.Fatal("expected early return error")
	}
	if got := countRows(t, conn); got != 0 {
		t.Fatalf("expected no rows after deferred rollback, got %d", got)
	}
}

func TestPing(t *testing.T) {
	client := NewFromGorm(newTestDB(t))
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestKindOf(t *testing.T) {
	conn := newTestDB(t)
	if err := conn.Create(&testModel{Name: "dup"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	dupErr := conn.Create(&testModel{Name: "dup"}).Error

	var missing testModel
	missingErr := conn.First(&missing, "name = ?", "nobody").Error

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindOK},
		{name: "gorm not found", err: missingErr, want: KindNotFound},
		{name: "sqlite unique", err: dupErr, want: KindConflict},
		{name: "pgx unique", err: &pgconn.PgError{Code: "23505"}, want: KindConflict},
		{name: "pgx fk", err: fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23503"}), want: KindConflict},
		{name: "pq unique", err: &pq.Error{Code: "23505"}, want: KindConflict},
		{name: "pgx serialization", err: &pgconn.PgError{Code: "40001"}, want: KindOther},
		{name: "plain", err: errors.New("connection reset"), want: KindOther},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Fatalf("%s: expected kind %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestClassifyKeepsCause(t *testing.T) {
	cause := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	err := Classify(cause)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatal("expected original pg error to remain in chain")
	}
	if !errors.Is(Classify(gorm.ErrRecordNotFound), ErrNotFound) {
		t.Fatal("expected ErrNotFound")
	}
	other := errors.New("boom")
	if Classify(other) != other {
		t.Fatal("expected other errors to pass through")
	}
	if Classify(nil) != nil {
		t.Fatal("expected nil passthrough")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "users_email_key") {
		t.Fatal("expected pgx unique violation match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "other"}, "users_email_key") {
		t.Fatal("constraint name should be honoured")
	}
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: test_models.name"), "") {
		t.Fatal("expected sqlite unique violation match")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil is never a violation")
	}
}
