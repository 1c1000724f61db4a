package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrUnitOfWorkClosed is returned when a finished unit of work is committed again.
var ErrUnitOfWorkClosed = errors.New("unit of work already closed")

// Transactor hands out units of work. Services depend on this rather than on *Client.
type Transactor interface {
	Begin(ctx context.Context) (*UnitOfWork, error)
}

// UnitOfWork is a scoped transaction. Callers defer Rollback right after
// Begin; Rollback after a successful Commit is a no-op, so every early return
// undoes the work and only the explicit Commit makes it visible.
type UnitOfWork struct {
	tx     *gorm.DB
	closed bool
}

// Begin opens a transaction bound to ctx.
func (c *Client) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx := c.conn.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return &UnitOfWork{tx: tx}, nil
}

// Tx returns the transactional handle that repositories bind to via WithTx.
func (u *UnitOfWork) Tx() *gorm.DB {
	return u.tx
}

// Commit makes the unit of work durable.
func (u *UnitOfWork) Commit() error {
	if u.closed {
		return ErrUnitOfWorkClosed
	}
	u.closed = true
	if err := u.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the unit of work unless it was already committed.
func (u *UnitOfWork) Rollback() error {
	if u.closed {
		return nil
	}
	u.closed = true
	if err := u.tx.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}
