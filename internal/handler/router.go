package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/academics-api/internal/middleware"
	"github.com/campuskit/academics-api/internal/models"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth       *AuthHandler
	Batch      *BatchHandler
	Class      *ClassHandler
	Subject    *SubjectHandler
	Student    *StudentHandler
	Faculty    *FacultyHandler
	Assignment *AssignmentHandler
	Attendance *AttendanceHandler
	Result     *ResultHandler
	Timetable  *TimetableHandler
	Dashboard  *DashboardHandler
	Export     *ExportHandler
}

// RouterOptions gates optional route groups.
type RouterOptions struct {
	DashboardEnabled bool
	ExportsEnabled   bool
}

// RegisterRoutes mounts every API route under the given group. Structural
// writes and deletions are admin-only; attendance, marks and timetable
// writes are faculty endpoints; students reach read-only views of their own
// records.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, auth gin.HandlerFunc, opts RouterOptions) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty)
	facultyOnly := middleware.RequireRoles(models.RoleFaculty)
	anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty, models.RoleStudent)

	api.POST("/auth/login", h.Auth.Login)
	api.PUT("/auth/password", auth, anyRole, h.Auth.ChangePassword)

	batches := api.Group("/batches", auth)
	{
		batches.POST("", adminOnly, h.Batch.Create)
		batches.GET("", staff, h.Batch.List)
		batches.GET("/:id", staff, h.Batch.Get)
		batches.DELETE("/:id", adminOnly, h.Batch.Delete)
		batches.GET("/:id/classes", staff, h.Class.ListByBatch)
		batches.GET("/:id/subjects", staff, h.Subject.ListByBatch)
		batches.GET("/:id/class-teachers", staff, h.Assignment.ListClassTeachers)
	}

	classes := api.Group("/classes", auth)
	{
		classes.POST("", adminOnly, h.Class.Create)
		classes.GET("/:id", staff, h.Class.Get)
		classes.DELETE("/:id", adminOnly, h.Class.Delete)
		classes.GET("/:id/students", staff, h.Class.Roster)
		classes.GET("/:id/subjects", staff, h.Assignment.ListClassSubjects)
		classes.GET("/:id/results", staff, h.Result.ClassResults)
		classes.GET("/:id/timetable", anyRole, h.Timetable.ClassWeek)
	}

	subjects := api.Group("/subjects", auth)
	{
		subjects.POST("", adminOnly, h.Subject.Create)
		subjects.GET("/:id", staff, h.Subject.Get)
		subjects.DELETE("/:id", adminOnly, h.Subject.Delete)
	}

	students := api.Group("/students", auth)
	{
		students.POST("", adminOnly, h.Student.Create)
		students.GET("/:id", staff, h.Student.Get)
		students.DELETE("/:id", adminOnly, h.Student.Delete)
		students.GET("/:id/attendance/subjects", anyRole, h.Attendance.SubjectSummaries)
		students.GET("/:id/attendance/monthly", anyRole, h.Attendance.MonthlySummaries)
		students.GET("/:id/attendance/semesters", anyRole, h.Attendance.SemesterSummaries)
		students.GET("/:id/attendance/history", anyRole, h.Attendance.History)
		students.GET("/:id/results", anyRole, h.Result.StudentResults)
		students.POST("/:id/gpa", adminOnly, h.Result.RecomputeGPA)
	}

	faculties := api.Group("/faculties", auth)
	{
		faculties.POST("", adminOnly, h.Faculty.Create)
		faculties.GET("", staff, h.Faculty.List)
		faculties.GET("/:id", staff, h.Faculty.Get)
		faculties.DELETE("/:id", adminOnly, h.Faculty.Delete)
		faculties.POST("/:id/deactivate", adminOnly, h.Faculty.Deactivate)
		faculties.GET("/:id/subjects", staff, h.Assignment.ListFacultySubjects)
	}

	assignments := api.Group("/assignments", auth, adminOnly)
	{
		assignments.POST("/class-teachers", h.Assignment.AssignClassTeacher)
		assignments.POST("/faculty-subjects", h.Assignment.AssignFacultySubject)
		assignments.PUT("/faculty-subjects/:id", h.Assignment.UpdateFacultySubject)
	}

	api.POST("/attendance", auth, facultyOnly, h.Attendance.Mark)
	api.POST("/marks", auth, facultyOnly, h.Result.EnterMarks)

	timetable := api.Group("/timetable", auth)
	{
		timetable.PUT("/slots", facultyOnly, h.Timetable.SetSlot)
		timetable.DELETE("/slots", facultyOnly, h.Timetable.ClearSlot)
		timetable.GET("/mine", facultyOnly, h.Timetable.MyWeek)
	}

	if opts.DashboardEnabled {
		api.GET("/dashboard/students/:id", auth, anyRole, h.Dashboard.Student)
	}

	if opts.ExportsEnabled {
		exports := api.Group("/exports", auth, staff)
		{
			exports.GET("/students/:id/report-card", h.Export.ReportCard)
			exports.GET("/classes/:id/results", h.Export.ClassResultSheet)
		}
	}
}
