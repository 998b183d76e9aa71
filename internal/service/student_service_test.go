package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuskit/academics-api/internal/models"
	appErrors "github.com/campuskit/academics-api/pkg/errors"
)

type studentWriterStub struct {
	users    []*models.User
	students []*models.Student
}

func (s *studentWriterStub) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	s.users = append(s.users, user)
	s.students = append(s.students, student)
	return nil
}

func (s *studentWriterStub) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return nil, sql.ErrNoRows
}

func (s *studentWriterStub) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	return nil, sql.ErrNoRows
}

func (s *studentWriterStub) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	return nil, nil
}

type batchReaderStub struct{ batch *models.Batch }

func (s batchReaderStub) FindByID(ctx context.Context, id string) (*models.Batch, error) {
	if s.batch == nil {
		return nil, sql.ErrNoRows
	}
	return s.batch, nil
}

func TestCreateStudentGeneratesLogin(t *testing.T) {
	repo := &studentWriterStub{}
	svc := NewStudentService(repo, batchReaderStub{batch: &models.Batch{
		ID:        "b1",
		StartDate: time.Now().AddDate(-1, -2, 0),
	}}, nil, zap.NewNop())

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		BatchID: "b1", ClassID: "c1", RegisterNo: "20CS042", FullName: "Asha Verma",
	})

	require.NoError(t, err)
	require.Len(t, repo.users, 1)
	user := repo.users[0]
	assert.Equal(t, "20CS042", user.Username)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.True(t, user.MustChangePassword)
	assert.True(t, user.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("20CS042")),
		"initial password is the register number")

	// 14 months into the programme: third semester.
	assert.Equal(t, "2-1", student.CurrentSemester)
}

func TestCreateStudentUnknownBatch(t *testing.T) {
	svc := NewStudentService(&studentWriterStub{}, batchReaderStub{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		BatchID: "missing", ClassID: "c1", RegisterNo: "20CS042", FullName: "Asha Verma",
	})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
