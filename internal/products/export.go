package product

import (
	"context"
	"io"

	"github.com/tealeg/xlsx"

	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
)

const exportSheetName = "Products"

var exportHeaders = []string{
	"ID", "Name", "Model", "SerialNumber", "Description", "Stock",
	"Price", "Warranty", "Distributor", "Category", "ImageURL", "CreatedAt", "UpdatedAt",
}

// ExportProducts writes the whole catalog as an xlsx workbook.
func (s *service) ExportProducts(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.ListForExport(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products for export")
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(exportSheetName)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create sheet")
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt64(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Model)
		row.AddCell().SetString(derefString(p.SerialNumber))
		row.AddCell().SetString(p.Description)
		row.AddCell().SetInt(p.QuantityInStock)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetString(p.WarrantyStatus)
		row.AddCell().SetString(p.DistributorInfo)
		row.AddCell().SetString(derefString(p.CategoryName))
		row.AddCell().SetString(p.ImageURL)
		row.AddCell().SetString(p.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(p.UpdatedAt.UTC().Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write workbook")
	}
	return nil
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
