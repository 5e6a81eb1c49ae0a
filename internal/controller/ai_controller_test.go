package controller

import (
	"bytes"
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/service"
	"callcenter_english_backend/internal/util"
	"callcenter_english_backend/pkg/logger"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type submitTestEnv struct {
	router    *gin.Engine
	mock      sqlmock.Sqlmock
	uploadDir string
	cleanup   func()
}

// newSubmitTestEnv wires the submission endpoint end to end: mocked
// database, HTTP test servers for the providers, local storage, and an
// authenticated user injected ahead of the handler.
func newSubmitTestEnv(t *testing.T, chatSrv, whisperSrv *httptest.Server) *submitTestEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	providerURL := func(srv *httptest.Server) string {
		if srv == nil {
			return "http://127.0.0.1:1"
		}
		return srv.URL
	}

	openAI := config.OpenAIConfig{
		APIKey:         "test-key",
		ChatModel:      "gpt-4o-mini",
		WhisperModel:   "whisper-1",
		TimeoutSeconds: 5,
	}
	chatCfg := openAI
	chatCfg.BaseURL = providerURL(chatSrv)
	whisperCfg := openAI
	whisperCfg.BaseURL = providerURL(whisperSrv)

	cfg := &config.Config{}
	cfg.Upload.Dir = t.TempDir()
	cfg.Storage.Type = config.StorageTypeLocal
	cfg.Storage.LocalPath = t.TempDir()

	speaking := service.NewSpeakingService(
		repository.NewSpeakingRepository(gdb),
		repository.NewScenarioRepository(gdb),
		service.NewAIService(chatCfg),
		service.NewTranscriptionService(whisperCfg),
		service.NewStorageService(cfg),
	)
	ctrl := NewAIController(speaking, service.NewAIService(chatCfg), cfg)

	router := gin.New()
	router.POST("/api/ai/speaking-session/:sessionId/submit", func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 7})
		ctrl.SubmitSession(c)
	})

	return &submitTestEnv{
		router:    router,
		mock:      mock,
		uploadDir: cfg.Upload.Dir,
		cleanup:   func() { db.Close() },
	}
}

func multipartBody(t *testing.T, audioName string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if audioName != "" {
		part, err := writer.CreateFormFile("audio", audioName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake audio bytes"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func (env *submitTestEnv) post(t *testing.T, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ai/speaking-session/5/submit", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *submitTestEnv) assertUploadDirEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func openSessionRows(userID uint) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "deleted_at", "user_id", "scenario_type", "duration",
		"fluency_score", "pronunciation_score", "grammar_score", "cultural_nuance_score", "overall_score",
		"recording_url", "ai_transcript", "ai_feedback", "completed_at"}).
		AddRow(5, now, now, nil, userID, "BasicGreeting", 0, nil, nil, nil, nil, nil, "", "", "", nil)
}

func TestSubmitSessionRemovesUploadOnSuccess(t *testing.T) {
	whisper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "thank you for calling"}`))
	}))
	defer whisper.Close()

	env := newSubmitTestEnv(t, nil, whisper)
	defer env.cleanup()

	env.mock.ExpectQuery("SELECT (.+) FROM `speaking_sessions`").
		WillReturnRows(openSessionRows(7))
	env.mock.ExpectQuery("SELECT (.+) FROM `scenarios`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	env.mock.ExpectBegin()
	env.mock.ExpectExec("UPDATE `speaking_sessions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	env.mock.ExpectCommit()

	body, contentType := multipartBody(t, "recording.webm", map[string]string{"duration": "30"})
	w := env.post(t, body, contentType)

	assert.Equal(t, http.StatusOK, w.Code)
	env.assertUploadDirEmpty(t)
}

func TestSubmitSessionRemovesUploadOnMissingSession(t *testing.T) {
	env := newSubmitTestEnv(t, nil, nil)
	defer env.cleanup()

	env.mock.ExpectQuery("SELECT (.+) FROM `speaking_sessions`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	body, contentType := multipartBody(t, "recording.webm", map[string]string{"duration": "30"})
	w := env.post(t, body, contentType)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env.assertUploadDirEmpty(t)
}

func TestSubmitSessionRemovesUploadOnTranscriptionFailure(t *testing.T) {
	whisper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "bad audio"}}`, http.StatusInternalServerError)
	}))
	defer whisper.Close()

	env := newSubmitTestEnv(t, nil, whisper)
	defer env.cleanup()

	env.mock.ExpectQuery("SELECT (.+) FROM `speaking_sessions`").
		WillReturnRows(openSessionRows(7))

	body, contentType := multipartBody(t, "recording.webm", map[string]string{"duration": "30"})
	w := env.post(t, body, contentType)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env.assertUploadDirEmpty(t)
}

func TestSubmitSessionRejectsBadExtensionBeforeSaving(t *testing.T) {
	env := newSubmitTestEnv(t, nil, nil)
	defer env.cleanup()

	body, contentType := multipartBody(t, "recording.exe", map[string]string{"duration": "30"})
	w := env.post(t, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.assertUploadDirEmpty(t)
}

func TestSubmitSessionAcceptsTranscriptWithoutAudio(t *testing.T) {
	// A client that could not record posts the transcript directly; the
	// transcription provider is never involved.
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant",
					"content": `{"fluencyScore": 70, "pronunciationScore": 70, "grammarScore": 70, "culturalNuanceScore": 70, "feedback": "solid", "suggestions": []}`}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer chat.Close()

	env := newSubmitTestEnv(t, chat, nil)
	defer env.cleanup()

	env.mock.ExpectQuery("SELECT (.+) FROM `speaking_sessions`").
		WillReturnRows(openSessionRows(7))
	env.mock.ExpectQuery("SELECT (.+) FROM `scenarios`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	env.mock.ExpectBegin()
	env.mock.ExpectExec("UPDATE `speaking_sessions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	env.mock.ExpectCommit()

	body, contentType := multipartBody(t, "", map[string]string{
		"transcript": "good morning, thank you for calling",
		"duration":   "25",
	})
	w := env.post(t, body, contentType)

	assert.Equal(t, http.StatusOK, w.Code)
	env.assertUploadDirEmpty(t)

	var resp struct {
		Data struct {
			Transcript string                  `json:"transcript"`
			Feedback   *model.SpeakingFeedback `json:"feedback"`
			Session    model.SpeakingSession   `json:"session"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "good morning, thank you for calling", resp.Data.Transcript)
	require.NotNil(t, resp.Data.Feedback)
	assert.Equal(t, 70.0, resp.Data.Feedback.OverallScore)
	assert.Empty(t, resp.Data.Session.RecordingURL)
}

func TestSubmitSessionRejectsEmptySubmission(t *testing.T) {
	env := newSubmitTestEnv(t, nil, nil)
	defer env.cleanup()

	body, contentType := multipartBody(t, "", map[string]string{"duration": "25"})
	w := env.post(t, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
