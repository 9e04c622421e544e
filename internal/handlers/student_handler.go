package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/config"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

// The ledger only needs students to exist; full student management lives in
// the admissions part of the portal. These handlers cover the minimum the
// fees screens use.

type studentInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Course      string `json:"course" binding:"required"`
	Batch       string `json:"batch"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ParentName  string `json:"parentName"`
	ParentPhone string `json:"parentPhone"`
}

func CreateStudentHandler(c *gin.Context) {
	var input studentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student data: " + err.Error()})
		return
	}

	student := models.Student{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Course:      input.Course,
		Batch:       input.Batch,
		Email:       input.Email,
		Phone:       input.Phone,
		ParentName:  input.ParentName,
		ParentPhone: input.ParentPhone,
	}
	if err := config.DB.Create(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		return
	}
	c.JSON(http.StatusCreated, student)
}

func GetStudentHandler(c *gin.Context) {
	var student models.Student
	if err := config.DB.First(&student, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, student)
}

func ListStudentsHandler(c *gin.Context) {
	var students []models.Student
	var totalRows int64

	baseQuery := config.DB.Model(&models.Student{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(course) LIKE ?",
			pattern, pattern, pattern)
	}
	if course := c.Query("course"); course != "" {
		baseQuery = baseQuery.Where("course = ?", course)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count students"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).
		Order("last_name, first_name").Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, students, totalRows))
}
