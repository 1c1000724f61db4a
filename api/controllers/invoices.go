package controllers

import (
	"io"
	"net/http"

	"github.com/angelmondragon/urbanthreads-backend/api/responses"
	"github.com/angelmondragon/urbanthreads-backend/api/validators"
	"github.com/angelmondragon/urbanthreads-backend/internal/invoices"
	"github.com/angelmondragon/urbanthreads-backend/pkg/logger"
)

func GenerateInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(r.Context(), logg, w, "invoice")
			return
		}
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}
		orderID, err := validators.ParseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Generate(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// DownloadInvoice streams the last generated invoice as an attachment.
func DownloadInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(r.Context(), logg, w, "invoice")
			return
		}
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}
		orderID, err := validators.ParseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dl, err := svc.Open(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer dl.File.Close()

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+dl.Filename+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, dl.File); err != nil && logg != nil {
			logg.Error(r.Context(), "stream invoice", err)
		}
	}
}
