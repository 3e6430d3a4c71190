package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) loadTransactions(c *gin.Context) ([]models.Transaction, bool) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return nil, false
	}

	var txs []models.Transaction
	if err := h.DB.Where("user_id = ? AND group_id IS NULL", user.ID).
		Order("date DESC").
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return nil, false
	}
	return txs, true
}

func exportTypeText(t string) string {
	if t == models.TypeIncome {
		return "Receita"
	}
	return "Despesa"
}

func exportPaidText(paid bool) string {
	if paid {
		return "Pago"
	}
	return "Pendente"
}

// ExportCSV streams the caller's personal transactions as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	txs, ok := h.loadTransactions(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transacoes_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel decodes accented names correctly.
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Tipo", "Descrição", "Categoria", "Valor (R$)", "Data", "Situação"})

	for _, t := range txs {
		writer.Write([]string{
			exportTypeText(t.Type),
			t.Description,
			t.Category,
			t.Amount.StringFixed(2),
			t.Date.Format("2006-01-02"),
			exportPaidText(t.IsPaid),
		})
	}
}

// ExportXLSX streams the caller's personal transactions as a spreadsheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	txs, ok := h.loadTransactions(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transações"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Tipo", "Descrição", "Categoria", "Valor (R$)", "Data", "Situação"}
	for i, name := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, name)
	}

	for idx, t := range txs {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), exportTypeText(t.Type))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Amount.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), exportPaidText(t.IsPaid))
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 18)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 10)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transacoes_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
	}
}
