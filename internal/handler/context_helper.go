package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/middleware"
	"github.com/campuskit/academics-api/internal/models"
	"github.com/campuskit/academics-api/internal/service"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

// currentFaculty resolves the faculty profile behind the caller's token.
func currentFaculty(c *gin.Context, faculties *service.FacultyService) (*models.Faculty, error) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return faculties.GetByUser(c.Request.Context(), claims.UserID)
}

// currentStudent resolves the student profile behind the caller's token.
func currentStudent(c *gin.Context, students *service.StudentService) (*models.Student, error) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return students.GetByUser(c.Request.Context(), claims.UserID)
}

// studentIDForRead returns the student id a read endpoint should serve.
// Students are pinned to their own profile; staff may pass any id.
func studentIDForRead(c *gin.Context, students *service.StudentService) (string, error) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return "", appErrors.ErrUnauthorized
	}
	if claims.Role == models.RoleStudent {
		student, err := students.GetByUser(c.Request.Context(), claims.UserID)
		if err != nil {
			return "", err
		}
		return student.ID, nil
	}
	return c.Param("id"), nil
}
