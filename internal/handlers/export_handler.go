package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

// ExportLedger downloads a student's ledger as an xlsx workbook.
// GET /students/:id/ledger/export
func (h *PaymentHandler) ExportLedger(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}

	result, err := h.svc.GetLedger(c.Request.Context(), studentID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	if result.Receipt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student has no payments to export"})
		return
	}

	workbook, err := buildLedgerWorkbook(result.Receipt, result.Installments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	filename := result.Receipt.ReceiptNumber + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

func buildLedgerWorkbook(receipt *models.FeeReceipt, installments []models.Installment) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	paymentsSheet := "payments"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(paymentsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Fee Receipt")
	_ = f.SetCellValue(summarySheet, "A3", "Receipt number")
	_ = f.SetCellValue(summarySheet, "B3", receipt.ReceiptNumber)
	_ = f.SetCellValue(summarySheet, "A4", "Total fee")
	_ = f.SetCellValue(summarySheet, "B4", receipt.TotalFee)
	_ = f.SetCellValue(summarySheet, "A5", "Total paid")
	_ = f.SetCellValue(summarySheet, "B5", receipt.TotalAmount)
	_ = f.SetCellValue(summarySheet, "A6", "Remaining")
	_ = f.SetCellValue(summarySheet, "B6", receipt.RemainingAmount)
	_ = f.SetCellValue(summarySheet, "A7", "Status")
	_ = f.SetCellValue(summarySheet, "B7", receipt.FeeStatus)

	_ = f.SetCellValue(paymentsSheet, "A1", "#")
	_ = f.SetCellValue(paymentsSheet, "B1", "Receipt number")
	_ = f.SetCellValue(paymentsSheet, "C1", "Date")
	_ = f.SetCellValue(paymentsSheet, "D1", "Mode")
	_ = f.SetCellValue(paymentsSheet, "E1", "Transaction ID")
	_ = f.SetCellValue(paymentsSheet, "F1", "Amount")
	for i, inst := range installments {
		row := i + 2
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("A%d", row), inst.PaymentNumber)
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("B%d", row), inst.ReceiptNumber)
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("C%d", row), inst.PaymentDate.Format("2006-01-02"))
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("D%d", row), inst.PaymentMode)
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("E%d", row), inst.TransactionID)
		_ = f.SetCellValue(paymentsSheet, fmt.Sprintf("F%d", row), inst.Amount)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
