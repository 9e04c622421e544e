package models

import "gorm.io/gorm"

// FeeStructure is the catalog default total fee for a course. One record per
// course; upserted from the fee-structure admin screen.
type FeeStructure struct {
	gorm.Model
	Course   string  `json:"course" gorm:"uniqueIndex:idx_fee_structures_course;not null"`
	TotalFee float64 `json:"totalFee" gorm:"type:numeric(12,2);not null"`
}
