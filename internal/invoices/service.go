package invoices

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/angelmondragon/urbanthreads-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
	"github.com/angelmondragon/urbanthreads-backend/pkg/logger"
)

// Service generates and serves PDF invoices for a user's own orders.
type Service interface {
	Generate(ctx context.Context, userID, orderID int64) (*GenerateResult, error)
	Open(ctx context.Context, userID, orderID int64) (*Download, error)
}

// GenerateResult names the file recorded on the order.
type GenerateResult struct {
	Filename string `json:"filename"`
}

// Download is an open invoice file. Callers must close File.
type Download struct {
	Filename string
	File     *os.File
}

type invoiceRecorder interface {
	SetInvoicePDF(ctx context.Context, orderID int64, filename string) error
}

type ServiceParams struct {
	Orders   orders.QueryService
	Recorder invoiceRecorder
	Store    *LocalStore
	Renderer *Renderer
	Logger   *logger.Logger
	Now      func() time.Time
}

type service struct {
	orders   orders.QueryService
	recorder invoiceRecorder
	store    *LocalStore
	renderer *Renderer
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("order query service is required")
	}
	if params.Recorder == nil {
		return nil, fmt.Errorf("invoice recorder is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("invoice store is required")
	}
	if params.Renderer == nil {
		return nil, fmt.Errorf("invoice renderer is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		orders:   params.Orders,
		recorder: params.Recorder,
		store:    params.Store,
		renderer: params.Renderer,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Generate renders a fresh invoice and records its filename on the order.
// Regenerating replaces the recorded filename; older files stay on disk.
func (s *service) Generate(ctx context.Context, userID, orderID int64) (*GenerateResult, error) {
	order, err := s.orders.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render invoice")
	}

	filename := fmt.Sprintf("invoice_%d_%d.pdf", order.ID, s.now().UnixMilli())
	if err := s.store.Save(filename, &buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store invoice")
	}
	if err := s.recorder.SetInvoicePDF(ctx, order.ID, filename); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record invoice")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"user_id":  userID,
			"order_id": order.ID,
			"filename": filename,
		})
		s.logg.Info(logCtx, "invoice generated")
	}
	return &GenerateResult{Filename: filename}, nil
}

// Open returns the most recently generated invoice for the order.
func (s *service) Open(ctx context.Context, userID, orderID int64) (*Download, error) {
	order, err := s.orders.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.InvoicePDF == nil || *order.InvoicePDF == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}

	f, err := s.store.Open(*order.InvoicePDF)
	if err != nil {
		if errors.Is(err, ErrFileMissing) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open invoice")
	}
	return &Download{Filename: *order.InvoicePDF, File: f}, nil
}
