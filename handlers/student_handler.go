package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/amwangi254/certihub/database"
	"github.com/amwangi254/certihub/models"
	"github.com/gofiber/fiber/v2"
)

type StudentRequest struct {
	FirstName      string  `json:"first_name" validate:"required,min=1"`
	LastName       string  `json:"last_name" validate:"required,min=1"`
	Email          string  `json:"email" validate:"required,email"`
	NationalID     *string `json:"national_id"`
	PassportNumber *string `json:"passport_number"`
}

func CreateStudent(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	student := models.Student{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		NationalID:     req.NationalID,
		PassportNumber: req.PassportNumber,
	}
	if err := database.DB.Create(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func ListStudents(c *fiber.Ctx) error {
	query := database.DB.Order("created_at DESC")
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(students)
}

func GetStudent(c *fiber.Ctx) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}
	return c.JSON(student)
}

func UpdateStudent(c *fiber.Ctx) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.NationalID = req.NationalID
	student.PassportNumber = req.PassportNumber

	if err := database.DB.Save(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
	}
	return c.JSON(student)
}

func DeleteStudent(c *fiber.Ctx) error {
	if err := database.DB.Delete(&models.Student{}, "id = ?", c.Params("studentId")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete student"})
	}
	return c.JSON(fiber.Map{"message": "Student deleted"})
}

type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportStudentsCSV bulk-creates students from an uploaded CSV with a
// header row of: first_name,last_name,email,national_id,passport_number.
// Rows are processed independently; a bad row is reported and skipped
// without aborting the rest.
func ImportStudentsCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CSV file is required"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot open uploaded file"})
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CSV is empty or unreadable"})
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"first_name", "last_name", "email"} {
		if _, ok := col[required]; !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("CSV is missing required column %q", required),
			})
		}
	}

	cell := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var created int
	var rowErrors []ImportRowError

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: row, Error: "unparseable row"})
			continue
		}

		student := models.Student{
			FirstName: cell(record, "first_name"),
			LastName:  cell(record, "last_name"),
			Email:     cell(record, "email"),
		}
		if nid := cell(record, "national_id"); nid != "" {
			student.NationalID = &nid
		}
		if passport := cell(record, "passport_number"); passport != "" {
			student.PassportNumber = &passport
		}

		if student.FirstName == "" || student.LastName == "" || !strings.Contains(student.Email, "@") {
			rowErrors = append(rowErrors, ImportRowError{Row: row, Error: "missing name or invalid email"})
			continue
		}

		if err := database.DB.Create(&student).Error; err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: row, Error: "failed to insert (duplicate email?)"})
			continue
		}
		created++
	}

	return c.JSON(fiber.Map{
		"created": created,
		"errors":  rowErrors,
	})
}
