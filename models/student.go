package models

import (
	"strings"

	"gorm.io/gorm"
)

// Student is owned by the broader student-management subsystem. The fee
// ledger only reads its identity, course and contact details.
type Student struct {
	gorm.Model
	FirstName   string `json:"firstName" gorm:"not null"`
	LastName    string `json:"lastName" gorm:"not null"`
	Course      string `json:"course" gorm:"not null;index"`
	Batch       string `json:"batch"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ParentName  string `json:"parentName"`
	ParentPhone string `json:"parentPhone"`
	IsActive    *bool  `json:"isActive" gorm:"default:true"`
}

func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
