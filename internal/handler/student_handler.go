package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	"github.com/noah-isme/class-enrollment-api/internal/models"
	"github.com/noah-isme/class-enrollment-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, in dto.StudentInput) (*models.Student, error)
	Update(ctx context.Context, id string, in dto.StudentInput) (*models.Student, error)
	Delete(ctx context.Context, id string) error
	Enroll(ctx context.Context, studentID, classID string) error
	Unenroll(ctx context.Context, studentID, classID string) error
	ListClasses(ctx context.Context, studentID string) ([]models.Class, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.Student}
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope{data=models.Student}
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.StudentInput true "Student payload"
// @Success 201 {object} response.Envelope{data=models.Student}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var in dto.StudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	student, err := h.students.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.StudentInput true "Student payload"
// @Success 200 {object} response.Envelope{data=models.Student}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var in dto.StudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete student and its enrollments
// @Tags Students
// @Param id path string true "Student ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Enroll godoc
// @Summary Enroll student in a class
// @Tags Enrollments
// @Param id path string true "Student ID"
// @Param classId path string true "Class ID"
// @Success 201
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/{id}/enroll/{classId} [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	if err := h.students.Enroll(c.Request.Context(), c.Param("id"), c.Param("classId")); err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedEmpty(c)
}

// Unenroll godoc
// @Summary Remove student from a class
// @Tags Enrollments
// @Param id path string true "Student ID"
// @Param classId path string true "Class ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/{id}/enroll/{classId} [delete]
func (h *StudentHandler) Unenroll(c *gin.Context) {
	if err := h.students.Unenroll(c.Request.Context(), c.Param("id"), c.Param("classId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListClasses godoc
// @Summary List classes of a student
// @Tags Enrollments
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope{data=[]models.Class}
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/classes [get]
func (h *StudentHandler) ListClasses(c *gin.Context) {
	classes, err := h.students.ListClasses(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// RegisterRoutes mounts the student endpoints on group.
func (h *StudentHandler) RegisterRoutes(group *gin.RouterGroup) {
	students := group.Group("/students")
	students.GET("", h.List)
	students.POST("", h.Create)
	students.GET("/:id", h.Get)
	students.PUT("/:id", h.Update)
	students.DELETE("/:id", h.Delete)
	students.GET("/:id/classes", h.ListClasses)
	students.POST("/:id/enroll/:classId", h.Enroll)
	students.DELETE("/:id/enroll/:classId", h.Unenroll)
}
