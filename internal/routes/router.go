package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/handlers"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/middleware"
)

// SetupRoutes registers the portal's routes.
func SetupRoutes(r *gin.Engine, payments *handlers.PaymentHandler) {
	// Public routes.
	r.POST("/login", handlers.LoginHandler)
	r.GET("/logout", handlers.LogoutHandler)

	// Everything under /api/v1 requires a valid token.
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/students", handlers.CreateStudentHandler)
		api.GET("/students", handlers.ListStudentsHandler)
		api.GET("/students/:id", handlers.GetStudentHandler)

		api.GET("/fee-structures", handlers.ListFeeStructuresHandler)
		api.PUT("/fee-structures", handlers.UpsertFeeStructuresHandler)

		api.POST("/students/:id/payments", payments.RecordPayment)
		api.GET("/students/:id/ledger", payments.GetLedger)
		api.GET("/students/:id/ledger/export", payments.ExportLedger)
		api.GET("/students/:id/receipt", payments.GetStudentReceipt)

		api.GET("/receipts", handlers.ListReceiptsHandler)
		api.GET("/receipts/:number", payments.GetReceiptByNumber)
	}
}
