package service

import (
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/util"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressTestService(t *testing.T, chatURL string) (*ProgressService, sqlmock.Sqlmock, func()) {
	t.Helper()
	gdb, mock, cleanup := newMockDB(t)
	svc := NewProgressService(
		repository.NewProgressRepository(gdb),
		repository.NewSkillRepository(gdb),
		newAITestService(chatURL),
	)
	return svc, mock, cleanup
}

func skillColumns() []string {
	return []string{"id", "created_at", "updated_at", "deleted_at", "user_id", "skill_name", "skill_category",
		"mastery_score", "practice_count", "last_practiced_at"}
}

func TestGetProgressNotFound(t *testing.T) {
	svc, mock, cleanup := newProgressTestService(t, "http://127.0.0.1:1")
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `user_progress`").
		WillReturnRows(sqlmock.NewRows(progressColumns()))

	_, err := svc.GetProgress(7)
	assert.ErrorIs(t, err, util.ErrProgressNotFound)
}

func TestUpdateProgressAppliesOnlyProvidedFields(t *testing.T) {
	svc, mock, cleanup := newProgressTestService(t, "http://127.0.0.1:1")
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM `user_progress`").
		WillReturnRows(sqlmock.NewRows(progressColumns()).
			AddRow(1, now, now, nil, 7, 2, 3, 55.5, 12.5, now, now.AddDate(0, 0, 60)))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `user_progress`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	week := 4
	hours := 14.0
	progress, err := svc.UpdateProgress(7, ProgressUpdate{CurrentWeek: &week, TotalHoursCompleted: &hours})
	require.NoError(t, err)

	assert.Equal(t, 2, progress.CurrentModule)
	assert.Equal(t, 4, progress.CurrentWeek)
	assert.Equal(t, 55.5, progress.OverallMasteryScore)
	assert.Equal(t, 14.0, progress.TotalHoursCompleted)
}

func TestUpsertSkillReplacesScoreAndCountsPractice(t *testing.T) {
	svc, mock, cleanup := newProgressTestService(t, "http://127.0.0.1:1")
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM `skill_mastery`").
		WillReturnRows(sqlmock.NewRows(skillColumns()).
			AddRow(9, now, now, nil, 7, "Past Tense", "Grammar", 60.0, 4, now))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `skill_mastery`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	skill, err := svc.UpsertSkill(7, "Past Tense", model.SkillGrammar, 85)
	require.NoError(t, err)

	// Replacement, not averaging.
	assert.Equal(t, 85.0, skill.MasteryScore)
	assert.Equal(t, 5, skill.PracticeCount)
	require.NotNil(t, skill.LastPracticedAt)
	assert.WithinDuration(t, time.Now(), *skill.LastPracticedAt, time.Minute)
}

func TestUpsertSkillCreatesFirstRecord(t *testing.T) {
	svc, mock, cleanup := newProgressTestService(t, "http://127.0.0.1:1")
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `skill_mastery`").
		WillReturnRows(sqlmock.NewRows(skillColumns()))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `skill_mastery`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	skill, err := svc.UpsertSkill(7, "Empathy Phrases", model.SkillCallCenter, 70)
	require.NoError(t, err)
	assert.Equal(t, 1, skill.PracticeCount)
	assert.Equal(t, model.SkillCallCenter, skill.SkillCategory)
}

func TestGetRecommendationsFallsBackOnProviderFailure(t *testing.T) {
	svc, mock, cleanup := newProgressTestService(t, "http://127.0.0.1:1")
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM `user_progress`").
		WillReturnRows(sqlmock.NewRows(progressColumns()).
			AddRow(1, now, now, nil, 7, 2, 3, 55.5, 12.5, now, now.AddDate(0, 0, 60)))
	mock.ExpectQuery("SELECT (.+) FROM `skill_mastery`").
		WillReturnRows(sqlmock.NewRows(skillColumns()).
			AddRow(9, now, now, nil, 7, "Past Tense", "Grammar", 60.0, 4, now))

	recs, err := svc.GetRecommendations(7)
	require.NoError(t, err)

	want := model.DefaultLearningRecommendations()
	assert.Equal(t, want.EstimatedTimeToB2, recs.EstimatedTimeToB2)
	assert.Equal(t, want.FocusAreas, recs.FocusAreas)
}

func TestGetRecommendationsUsesProviderAnswer(t *testing.T) {
	chat := newChatServer(t, `{"recommendations": ["Drill minimal pairs daily"], "focusAreas": ["pronunciation"], "estimatedTimeToB2": 6}`)
	defer chat.Close()

	svc, mock, cleanup := newProgressTestService(t, chat.URL)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM `user_progress`").
		WillReturnRows(sqlmock.NewRows(progressColumns()).
			AddRow(1, now, now, nil, 7, 2, 3, 55.5, 12.5, now, now.AddDate(0, 0, 60)))
	mock.ExpectQuery("SELECT (.+) FROM `skill_mastery`").
		WillReturnRows(sqlmock.NewRows(skillColumns()))

	recs, err := svc.GetRecommendations(7)
	require.NoError(t, err)
	assert.Equal(t, 6, recs.EstimatedTimeToB2)
	assert.Equal(t, []string{"pronunciation"}, recs.FocusAreas)
}
