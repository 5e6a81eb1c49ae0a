package service

import (
	"callcenter_english_backend/internal/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitScoreIsExactRatio(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		correct   int
		wantScore float64
	}{
		{name: "perfect", total: 10, correct: 10, wantScore: 100},
		{name: "zero correct", total: 10, correct: 0, wantScore: 0},
		{name: "non-terminating ratio", total: 3, correct: 1, wantScore: 1.0 / 3.0 * 100},
		{name: "seven of eight", total: 8, correct: 7, wantScore: 87.5},
		{name: "single question", total: 1, correct: 1, wantScore: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb, mock, cleanup := newMockDB(t)
			defer cleanup()
			svc := NewQuizService(repository.NewQuizRepository(gdb))

			mock.ExpectBegin()
			mock.ExpectExec("INSERT INTO `quiz_results`").
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectCommit()

			result, err := svc.Submit(7, "Grammar", tt.total, tt.correct, 120)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, uint(7), result.UserID)
		})
	}
}

func TestStatsAveragesAndGroups(t *testing.T) {
	gdb, mock, cleanup := newMockDB(t)
	defer cleanup()
	svc := NewQuizService(repository.NewQuizRepository(gdb))

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "deleted_at", "user_id", "quiz_type", "score", "total_questions", "correct_answers", "time_spent_seconds", "completed_at"}).
		AddRow(1, now, now, nil, 7, "Grammar", 80.0, 10, 8, 120, now).
		AddRow(2, now, now, nil, 7, "Grammar", 60.0, 10, 6, 130, now).
		AddRow(3, now, now, nil, 7, "Vocabulary", 100.0, 5, 5, 60, now)
	mock.ExpectQuery("SELECT (.+) FROM `quiz_results`").WillReturnRows(rows)

	stats, err := svc.Stats(7)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalQuizzes)
	assert.Equal(t, "80.00", stats.AverageScore)
	assert.Equal(t, map[string]int{"Grammar": 2, "Vocabulary": 1}, stats.QuizzesByType)
}

func TestStatsEmptyHistory(t *testing.T) {
	gdb, mock, cleanup := newMockDB(t)
	defer cleanup()
	svc := NewQuizService(repository.NewQuizRepository(gdb))

	mock.ExpectQuery("SELECT (.+) FROM `quiz_results`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	stats, err := svc.Stats(7)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalQuizzes)
	assert.Equal(t, "0.00", stats.AverageScore)
}
