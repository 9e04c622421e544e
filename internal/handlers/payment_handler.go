package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/config"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/ledger"
)

const ledgerCacheTTL = 5 * time.Minute

// PaymentHandler exposes the fee ledger over HTTP.
type PaymentHandler struct {
	svc *ledger.Service
}

func NewPaymentHandler(svc *ledger.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type recordPaymentInput struct {
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMode   string  `json:"paymentMode" binding:"required"`
	TransactionID string  `json:"transactionId"`
	Remarks       string  `json:"remarks"`
	TotalFee      float64 `json:"totalFee"`
}

// RecordPayment records one installment for a student.
// POST /students/:id/payments
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}

	var input recordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment data: " + err.Error()})
		return
	}

	result, err := h.svc.RecordPayment(c.Request.Context(), ledger.RecordPaymentInput{
		StudentID:     studentID,
		Amount:        input.Amount,
		PaymentMode:   input.PaymentMode,
		TransactionID: input.TransactionID,
		Remarks:       input.Remarks,
		TotalFee:      input.TotalFee,
	})
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	invalidateLedgerCache(studentID)
	c.JSON(http.StatusCreated, result)
}

// GetLedger returns the student's installment history and receipt.
// GET /students/:id/ledger
func (h *PaymentHandler) GetLedger(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}

	cacheKey := ledgerCacheKey(studentID)
	if raw, ok := cacheGet(cacheKey); ok {
		c.Data(http.StatusOK, "application/json", raw)
		return
	}

	result, err := h.svc.GetLedger(c.Request.Context(), studentID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	cachePut(cacheKey, result)
	c.JSON(http.StatusOK, result)
}

// GetStudentReceipt returns the student's receipt aggregate.
// GET /students/:id/receipt
func (h *PaymentHandler) GetStudentReceipt(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}

	cacheKey := receiptCacheKey(studentID)
	if raw, ok := cacheGet(cacheKey); ok {
		c.Data(http.StatusOK, "application/json", raw)
		return
	}

	receipt, err := h.svc.GetReceiptByStudent(c.Request.Context(), studentID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	cachePut(cacheKey, receipt)
	c.JSON(http.StatusOK, receipt)
}

// GetReceiptByNumber looks a receipt up by its master receipt number.
// GET /receipts/:number
func (h *PaymentHandler) GetReceiptByNumber(c *gin.Context) {
	receipt, err := h.svc.GetReceiptByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// receiptRow joins receipt and student columns for the receipts list screen.
type receiptRow struct {
	ID              uint    `json:"id"`
	ReceiptNumber   string  `json:"receiptNumber"`
	StudentID       uint    `json:"studentId"`
	StudentFullName string  `json:"studentFullName"`
	Course          string  `json:"course"`
	TotalFee        float64 `json:"totalFee"`
	TotalAmount     float64 `json:"totalAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
	FeeStatus       string  `json:"feeStatus"`
}

// ListReceiptsHandler lists receipts with pagination and search.
// GET /receipts
func ListReceiptsHandler(c *gin.Context) {
	var results []receiptRow
	var totalRows int64

	baseQuery := config.DB.Table("fee_receipts fr").
		Joins("JOIN students s ON s.id = fr.student_id").
		Where("fr.deleted_at IS NULL")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(fr.receipt_number) LIKE ? OR LOWER(s.last_name) LIKE ? OR LOWER(s.first_name) LIKE ?",
			pattern, pattern, pattern)
	}
	if status := c.Query("status"); status != "" {
		baseQuery = baseQuery.Where("fr.fee_status = ?", status)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count receipts"})
		return
	}

	err := baseQuery.Select(`
		fr.id AS "ID",
		fr.receipt_number AS "ReceiptNumber",
		fr.student_id AS "StudentID",
		(s.last_name || ' ' || s.first_name) AS "StudentFullName",
		s.course AS "Course",
		fr.total_fee AS "TotalFee",
		fr.total_amount AS "TotalAmount",
		fr.remaining_amount AS "RemainingAmount",
		fr.fee_status AS "FeeStatus"
	`).
		Scopes(Paginate(c)).
		Order("fr.receipt_number DESC").
		Scan(&results).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch receipts"})
		return
	}

	if results == nil {
		results = make([]receiptRow, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, results, totalRows))
}

func studentIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student id"})
		return 0, false
	}
	return uint(id), true
}

// writeLedgerError maps the ledger error taxonomy onto HTTP statuses.
func writeLedgerError(c *gin.Context, err error) {
	var vErr *ledger.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, ledger.ErrStudentNotFound), errors.Is(err, ledger.ErrReceiptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrOverpayment), errors.Is(err, ledger.ErrFeeNotConfigured):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Payment could not be committed, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// --- read cache ---

func ledgerCacheKey(studentID uint) string {
	return fmt.Sprintf("ledger:%d", studentID)
}

func receiptCacheKey(studentID uint) string {
	return fmt.Sprintf("receipt:student:%d", studentID)
}

func cacheGet(key string) ([]byte, bool) {
	if config.RDB == nil {
		return nil, false
	}
	raw, err := config.RDB.Get(config.Ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Ledger cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func cachePut(key string, value interface{}) {
	if config.RDB == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	config.RDB.Set(config.Ctx, key, raw, ledgerCacheTTL)
}

func invalidateLedgerCache(studentID uint) {
	if config.RDB == nil {
		return
	}
	config.RDB.Del(config.Ctx, ledgerCacheKey(studentID), receiptCacheKey(studentID))
}
