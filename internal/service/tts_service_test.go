package service

import (
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/util"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTTSTestService(t *testing.T, baseURL string) *TTSService {
	t.Helper()
	cfg := &config.Config{}
	cfg.OpenAI = config.OpenAIConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		TTSModel:       "tts-1",
		TimeoutSeconds: 5,
	}
	cfg.Upload.AudioOutDir = t.TempDir()
	return NewTTSService(cfg, nil)
}

func TestValidateTTSRequest(t *testing.T) {
	svc := newTTSTestService(t, "http://unused")

	tests := []struct {
		name    string
		text    string
		voice   string
		speed   float64
		model   string
		wantErr error
	}{
		{name: "defaults fill in", text: "hello"},
		{name: "empty text", text: "", wantErr: util.ErrEmptyText},
		{name: "text too long", text: strings.Repeat("a", util.MaxTTSChars+1), wantErr: util.ErrTextTooLong},
		{name: "text at the cap", text: strings.Repeat("a", util.MaxTTSChars)},
		{name: "unknown voice", text: "hello", voice: "darth", wantErr: util.ErrInvalidVoice},
		{name: "every known voice", text: "hello", voice: "shimmer"},
		{name: "speed below range", text: "hello", speed: 0.1, wantErr: util.ErrInvalidSpeed},
		{name: "speed above range", text: "hello", speed: 4.5, wantErr: util.ErrInvalidSpeed},
		{name: "speed at bounds", text: "hello", speed: 4.0},
		{name: "unknown model", text: "hello", model: "tts-9", wantErr: util.ErrInvalidTTSModel},
		{name: "hd model", text: "hello", model: "tts-1-hd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			voice, speed, model := tt.voice, tt.speed, tt.model
			err := svc.ValidateTTSRequest(tt.text, &voice, &speed, &model)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, voice)
			assert.NotEmpty(t, model)
			assert.Greater(t, speed, 0.0)
		})
	}
}

func TestSynthesizeReturnsDataURIAndCleansUp(t *testing.T) {
	audio := []byte("pretend mp3 bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write(audio)
	}))
	defer srv.Close()

	svc := newTTSTestService(t, srv.URL)

	result, err := svc.Synthesize(context.Background(), "Thank you for calling.", "", 0, "")
	require.NoError(t, err)

	const prefix = "data:audio/mp3;base64,"
	require.True(t, strings.HasPrefix(result.AudioData, prefix))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(result.AudioData, prefix))
	require.NoError(t, err)
	assert.Equal(t, audio, decoded)

	assert.Equal(t, DefaultTTSVoice, result.Voice)
	assert.Equal(t, DefaultTTSSpeed, result.Speed)
	assert.False(t, result.Cached)

	// The staging file must be gone whatever happened.
	entries, err := os.ReadDir(svc.audioDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSynthesizeProviderFailureCleansUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := newTTSTestService(t, srv.URL)

	_, err := svc.Synthesize(context.Background(), "hello", "", 0, "")
	assert.Error(t, err)

	entries, readErr := os.ReadDir(svc.audioDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestSynthesizeRejectsBeforeCallingProvider(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := newTTSTestService(t, srv.URL)

	_, err := svc.Synthesize(context.Background(), strings.Repeat("x", util.MaxTTSChars+1), "", 0, "")
	assert.ErrorIs(t, err, util.ErrTextTooLong)
	assert.False(t, called)
}

func TestCacheKeyIsParameterSensitive(t *testing.T) {
	base := cacheKey("hello", "alloy", 1.0, "tts-1")
	assert.Equal(t, base, cacheKey("hello", "alloy", 1.0, "tts-1"))
	assert.NotEqual(t, base, cacheKey("hello", "nova", 1.0, "tts-1"))
	assert.NotEqual(t, base, cacheKey("hello", "alloy", 1.5, "tts-1"))
	assert.NotEqual(t, base, cacheKey("hello", "alloy", 1.0, "tts-1-hd"))
	assert.NotEqual(t, base, cacheKey("goodbye", "alloy", 1.0, "tts-1"))
}
