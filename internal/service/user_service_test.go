package service

import (
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/util"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserTestService(t *testing.T) (*UserService, sqlmock.Sqlmock, func()) {
	t.Helper()
	gdb, mock, cleanup := newMockDB(t)
	svc := NewUserService(repository.NewUserRepository(gdb), repository.NewProgressRepository(gdb))
	return svc, mock, cleanup
}

func progressColumns() []string {
	return []string{"id", "created_at", "updated_at", "deleted_at", "user_id", "current_module", "current_week",
		"overall_mastery_score", "total_hours_completed", "start_date", "expected_completion_date"}
}

func TestGetProfileNotFound(t *testing.T) {
	svc, mock, cleanup := newUserTestService(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetProfile(42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUpdateProfileKeepsEmptyFields(t *testing.T) {
	svc, mock, cleanup := newUserTestService(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRows("maria@example.com", "hash"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := svc.UpdateProfile(7, "Mari", "")
	require.NoError(t, err)
	assert.Equal(t, "Mari", user.FirstName)
	assert.Equal(t, "Santos", user.LastName)
}

func TestInitializeProgressStartsAtModuleOne(t *testing.T) {
	svc, mock, cleanup := newUserTestService(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `user_progress`").
		WillReturnRows(sqlmock.NewRows(progressColumns()))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `user_progress`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	progress, err := svc.InitializeProgress(7)
	require.NoError(t, err)

	assert.Equal(t, 1, progress.CurrentModule)
	assert.Equal(t, 1, progress.CurrentWeek)
	assert.Zero(t, progress.OverallMasteryScore)
	assert.Zero(t, progress.TotalHoursCompleted)

	// The course plan runs 90 days from signup.
	require.NotNil(t, progress.ExpectedCompletionDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 90), *progress.ExpectedCompletionDate, time.Minute)
}

func TestInitializeProgressIsOnePerUser(t *testing.T) {
	svc, mock, cleanup := newUserTestService(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM `user_progress`").
		WillReturnRows(sqlmock.NewRows(progressColumns()).
			AddRow(1, now, now, nil, 7, 2, 3, 55.5, 12, now, now.AddDate(0, 0, 60)))

	_, err := svc.InitializeProgress(7)
	assert.ErrorIs(t, err, util.ErrProgressInitialized)
}
