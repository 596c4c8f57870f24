package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

const SheetName = "Leads"

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var leadHeaders = []string{
	"ID", "Nome", "E-mail", "Telefone", "Interesse", "Status",
	"Prioridade", "Origem", "Observações", "Contatado em", "Criado em", "Atualizado em",
}

// WriteLeads gera a planilha de leads; as datas saem no fuso do negócio.
func WriteLeads(w io.Writer, leads []entity.Lead, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	header := make([]interface{}, len(leadHeaders))
	for i, h := range leadHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(leadHeaders))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, l := range leads {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			l.ID, l.Name, l.Email, l.Phone, l.Interest, string(l.Status),
			string(l.Priority), string(l.Source), l.Notes,
			formatTime(l.ContactedAt, loc), formatTime(l.CreatedAt, loc), formatTime(l.UpdatedAt, loc),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02/01/2006 15:04")
}
