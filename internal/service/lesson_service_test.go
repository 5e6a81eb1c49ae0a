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

func newLessonTestService(t *testing.T) (*LessonService, sqlmock.Sqlmock, func()) {
	t.Helper()
	gdb, mock, cleanup := newMockDB(t)
	return NewLessonService(repository.NewLessonRepository(gdb)), mock, cleanup
}

func lessonProgressColumns() []string {
	return []string{"id", "created_at", "updated_at", "deleted_at", "user_id", "lesson_id",
		"completed", "completed_at", "time_spent_seconds", "score"}
}

func TestGetLessonNotFound(t *testing.T) {
	svc, mock, cleanup := newLessonTestService(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `lessons`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(99)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestCompleteCreatesFirstRecord(t *testing.T) {
	svc, mock, cleanup := newLessonTestService(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `user_lesson_progress`").
		WillReturnRows(sqlmock.NewRows(lessonProgressColumns()))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `user_lesson_progress`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	score := 88.0
	progress, err := svc.Complete(7, 2, 540, &score)
	require.NoError(t, err)

	assert.True(t, progress.Completed)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, 540, progress.TimeSpentSeconds)
	require.NotNil(t, progress.Score)
	assert.Equal(t, 88.0, *progress.Score)
}

func TestCompleteIsIdempotentAndKeepsPriorValues(t *testing.T) {
	// Completing again without a score or time keeps the stored ones.
	svc, mock, cleanup := newLessonTestService(t)
	defer cleanup()

	now := time.Now()
	prior := 92.5
	mock.ExpectQuery("SELECT (.+) FROM `user_lesson_progress`").
		WillReturnRows(sqlmock.NewRows(lessonProgressColumns()).
			AddRow(4, now, now, nil, 7, 2, true, now, 600, prior))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `user_lesson_progress`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	progress, err := svc.Complete(7, 2, 0, nil)
	require.NoError(t, err)

	assert.True(t, progress.Completed)
	assert.Equal(t, 600, progress.TimeSpentSeconds)
	require.NotNil(t, progress.Score)
	assert.Equal(t, 92.5, *progress.Score)
}
