package export

import (
	"bytes"
	"fmt"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const fontName = "Arial"

// ContractStatement returns a PDF with the contract data, its totals and
// all sub-elements posted against it.
func ContractStatement(contract models.Contract, subElements []models.SubElement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Core fonts are cp1252 encoded
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Extrato do contrato %s", contract.Number)), "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 10)
	lines := []string{
		fmt.Sprintf("Contratante: %s", safeValue(contract.ContractingParty)),
		fmt.Sprintf("Contratada: %s (CNPJ %s)", safeValue(contract.ContractedParty), safeValue(contract.ContractedTaxID)),
		fmt.Sprintf("Objeto: %s", safeValue(contract.Scope)),
		fmt.Sprintf("Status: %s", contract.Status),
		fmt.Sprintf("Vigência até: %s", formatDate(contract.ValidityEnd)),
		fmt.Sprintf("Responsável: %s", safeValue(contract.Responsible)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Lançamentos"), "", 1, "L", false, 0, "")

	headers := []string{"Data", "Tipo", "Nome", "Status", "Valor"}
	widths := []float64{25, 25, 75, 25, 30}
	drawRow(pdf, tr, headers, widths, true)

	for _, s := range subElements {
		amount := "-"
		if s.Amount.Valid {
			amount = FormatBRL(s.Amount.Decimal)
		}

		date := s.Date
		drawRow(pdf, tr, []string{
			formatDate(&date),
			string(s.Kind),
			s.Name,
			string(s.Status),
			amount,
		}, widths, false)
	}
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 11)
	totals := []struct {
		label string
		value decimal.Decimal
	}{
		{"Valor do contrato", contract.ContractValue},
		{"Valor medido", contract.MeasuredValue},
		{"Saldo a medir", contract.ContractValue.Sub(contract.MeasuredValue)},
	}
	for _, t := range totals {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: %s", t.label, FormatBRL(t.value))), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)

	for i, col := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
