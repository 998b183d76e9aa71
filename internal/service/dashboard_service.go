package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/academics-api/internal/models"
)

// StudentDashboard is the composite payload behind a student's home screen.
type StudentDashboard struct {
	Student     *models.Student            `json:"student"`
	Attendance  []models.AttendanceSummary `json:"attendance"`
	Results     *models.StudentResults     `json:"results"`
	Timetable   []models.TimetableEntry    `json:"timetable"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// DashboardService assembles read-mostly composite views and caches them.
type DashboardService struct {
	students   *StudentService
	attendance *AttendanceService
	results    *ResultService
	timetable  *TimetableService
	cache      *CacheService
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(students *StudentService, attendance *AttendanceService, results *ResultService, timetable *TimetableService, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students:   students,
		attendance: attendance,
		results:    results,
		timetable:  timetable,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// StudentDashboard builds the student's composite view, serving from cache
// when available.
func (s *DashboardService) StudentDashboard(ctx context.Context, studentID string) (*StudentDashboard, error) {
	key := fmt.Sprintf("dashboard:student:%s", studentID)
	var cached StudentDashboard
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	student, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendance.SubjectSummaries(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	results, err := s.results.StudentResults(ctx, student.ID, student.CurrentSemester)
	if err != nil {
		return nil, err
	}
	timetable, err := s.timetable.ClassWeek(ctx, student.ClassID, student.CurrentSemester)
	if err != nil {
		return nil, err
	}

	dashboard := &StudentDashboard{
		Student:     student,
		Attendance:  attendance,
		Results:     results,
		Timetable:   timetable,
		GeneratedAt: time.Now().UTC(),
	}
	if err := s.cache.Set(ctx, key, dashboard, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("student_id", studentID), zap.Error(err))
	}
	return dashboard, nil
}

// InvalidateStudent drops a student's cached dashboard after writes that
// change it.
func (s *DashboardService) InvalidateStudent(ctx context.Context, studentID string) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("dashboard:student:%s", studentID)); err != nil {
		s.logger.Warn("dashboard cache invalidate failed", zap.String("student_id", studentID), zap.Error(err))
	}
}
