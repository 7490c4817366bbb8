package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// GET /api/export — download the caller's generation history as xlsx.
func (h *Handler) ExportUsage(c *gin.Context) {
	userID := getUserIDFromContext(c)

	records, err := h.usage.ListByUser(userID, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Generation History"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"No", "Date", "Time", "Prompt", "Generated Code"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, hd)
	}

	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "E1", styleHeader)

	row := 2
	for i, rec := range records {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), rec.CreatedAt.Format("02-01-2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), rec.CreatedAt.Format("15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), rec.Prompt)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), rec.GeneratedCode)
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "C", 15)
	f.SetColWidth(sheetName, "D", "D", 40)
	f.SetColWidth(sheetName, "E", "E", 60)

	fileName := fmt.Sprintf("codebot_usage_%s.xlsx", time.Now().Format("20060102"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate excel"})
	}
}
