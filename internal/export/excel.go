package export

import (
	"fmt"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	contractSheet = "Contratos"
	summarySheet  = "Resumo"
)

var contractHeaders = []string{
	"Número",
	"Contratante",
	"Contratada",
	"CNPJ",
	"UF",
	"Ano",
	"Objeto",
	"Responsável",
	"Status",
	"Valor do contrato",
	"Valor medido",
	"Saldo",
	"Fim da vigência",
}

// ContractWorkbook returns an xlsx workbook listing the contracts and a
// summary of the values per status.
func ContractWorkbook(contracts []models.Contract) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", contractSheet); err != nil {
		return nil, err
	}

	if err := writeContracts(file, contracts); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	if err := writeSummary(file, contracts); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeContracts(file *excelize.File, contracts []models.Contract) error {
	for i, header := range contractHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(contractSheet, cell, header); err != nil {
			return err
		}
	}

	for i, c := range contracts {
		row := []any{
			c.Number,
			c.ContractingParty,
			c.ContractedParty,
			c.ContractedTaxID,
			c.State,
			c.Year,
			c.Scope,
			c.Responsible,
			string(c.Status),
			c.ContractValue.InexactFloat64(),
			c.MeasuredValue.InexactFloat64(),
			c.ContractValue.Sub(c.MeasuredValue).InexactFloat64(),
			formatDate(c.ValidityEnd),
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := file.SetSheetRow(contractSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(contracts) > 0 {
		style, err := file.NewStyle(&excelize.Style{NumFmt: 4})
		if err != nil {
			return err
		}

		last := fmt.Sprintf("L%d", len(contracts)+1)
		if err := file.SetCellStyle(contractSheet, "J2", last, style); err != nil {
			return err
		}
	}

	_ = file.SetColWidth(contractSheet, "A", "A", 16)
	_ = file.SetColWidth(contractSheet, "B", "C", 32)
	_ = file.SetColWidth(contractSheet, "G", "G", 48)
	_ = file.SetColWidth(contractSheet, "J", "L", 18)
	return nil
}

func writeSummary(file *excelize.File, contracts []models.Contract) error {
	set := func(cell string, value any) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	set("A1", "Status")
	set("B1", "Quantidade")
	set("C1", "Valor do contrato")
	set("D1", "Valor medido")

	for i, status := range models.ContractStatuses {
		var count int
		contractValue, measuredValue := decimal.Zero, decimal.Zero

		for _, c := range contracts {
			if c.Status != status {
				continue
			}
			count++
			contractValue = contractValue.Add(c.ContractValue)
			measuredValue = measuredValue.Add(c.MeasuredValue)
		}

		row := i + 2
		set(fmt.Sprintf("A%d", row), string(status))
		set(fmt.Sprintf("B%d", row), count)
		set(fmt.Sprintf("C%d", row), FormatBRL(contractValue))
		set(fmt.Sprintf("D%d", row), FormatBRL(measuredValue))
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 16)
	_ = file.SetColWidth(summarySheet, "C", "D", 22)
	return nil
}
