package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/assessment-api/internal/middleware"
	"github.com/yourusername/assessment-api/internal/service"
)

// ExportHandler выгружает результаты опроса в CSV/XLSX
type ExportHandler struct {
	exportService *service.ExportService
	defaultLocale string
}

// NewExportHandler создает новый обработчик экспорта
func NewExportHandler(exportService *service.ExportService, defaultLocale string) *ExportHandler {
	return &ExportHandler{exportService: exportService, defaultLocale: defaultLocale}
}

// ExportResults выгружает результаты опроса
// GET /api/surveys/:id/results/export?format=csv|xlsx
func (h *ExportHandler) ExportResults(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	surveyID := pathUUID(c, "surveyID")
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	table, err := h.exportService.ResultsTable(c.Request.Context(), actor, surveyID,
		middleware.LocaleFromContext(c, h.defaultLocale))
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("survey_%s_results", surveyID)
	if format == "xlsx" {
		h.exportXLSX(c, table, filename)
		return
	}
	h.exportCSV(c, table, filename)
}

// exportCSV экспортирует таблицу в CSV с правильным экранированием спецсимволов
func (h *ExportHandler) exportCSV(c *gin.Context, table *service.ResultsTable, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// После начала отправки статус уже 200, ошибку можно только залогировать и оборвать ответ
	if err := writeCSV(c.Writer, table); err != nil {
		log.Printf("[ExportHandler] Ошибка записи CSV: %v", err)
		_ = c.Error(err)
		c.Abort()
	}
}

// writeCSV пишет BOM, заголовки и строки; возвращает первую ошибку записи
func writeCSV(w io.Writer, table *service.ResultsTable) error {
	// BOM для корректного отображения UTF-8 в Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(sanitizeRow(table.Headers)); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, row := range table.Rows {
		if err := writer.Write(sanitizeRow(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// rowWriter - часть excelize.StreamWriter, которой пользуется writeXLSXRows
type rowWriter interface {
	SetRow(cell string, values []interface{}, opts ...excelize.RowOpts) error
	Flush() error
}

// exportXLSX экспортирует таблицу в Excel с использованием StreamWriter
func (h *ExportHandler) exportXLSX(c *gin.Context, table *service.ResultsTable, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ExportHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	if err := writeXLSXRows(sw, table); err != nil {
		log.Printf("[ExportHandler] Ошибка формирования Excel: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ExportHandler] Ошибка записи Excel в response: %v", err)
	}
}

// writeXLSXRows пишет заголовки и строки, останавливаясь на первой ошибке
func writeXLSXRows(sw rowWriter, table *service.ResultsTable) error {
	if err := sw.SetRow("A1", toCells(table.Headers)); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func sanitizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = sanitizeForExcel(v)
	}
	return out
}

func toCells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = sanitizeForExcel(v)
	}
	return out
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
