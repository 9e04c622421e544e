package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/config"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

// ListFeeStructuresHandler returns the whole course fee catalog.
func ListFeeStructuresHandler(c *gin.Context) {
	var structures []models.FeeStructure
	if err := config.DB.Order("course asc").Find(&structures).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch fee structures"})
		return
	}
	c.JSON(http.StatusOK, structures)
}

type feeStructureInput struct {
	Course   string  `json:"course" binding:"required"`
	TotalFee float64 `json:"totalFee" binding:"required,gt=0"`
}

// UpsertFeeStructuresHandler creates or updates catalog entries in bulk. The
// catalog only feeds new ledgers; receipts already created keep the total fee
// they were opened with.
func UpsertFeeStructuresHandler(c *gin.Context) {
	var inputs []feeStructureInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data provided"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			fs := models.FeeStructure{Course: in.Course, TotalFee: in.TotalFee}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "course"}},
				DoUpdates: clause.AssignmentColumns([]string{"total_fee", "updated_at"}),
			}).Create(&fs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fee structures"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fee structures updated successfully"})
}
