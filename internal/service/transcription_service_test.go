package service

import (
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAudioUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{name: "webm ok", filename: "recording.webm", size: 1024},
		{name: "mp3 ok", filename: "clip.mp3", size: 1024},
		{name: "uppercase extension ok", filename: "CLIP.WAV", size: 1024},
		{name: "disallowed extension", filename: "evil.exe", size: 1024, wantErr: util.ErrInvalidAudioFormat},
		{name: "ogg not in allow-list", filename: "clip.ogg", size: 1024, wantErr: util.ErrInvalidAudioFormat},
		{name: "exactly at cap", filename: "big.wav", size: 25 * 1024 * 1024},
		{name: "over the 25MB cap", filename: "big.wav", size: 25*1024*1024 + 1, wantErr: util.ErrAudioTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAudioUpload(tt.filename, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.webm")
	require.NoError(t, os.WriteFile(path, []byte("fake audio bytes"), 0644))
	return path
}

func TestTranscribeSendsExpectedForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))
		assert.Equal(t, "json", r.FormValue("response_format"))
		assert.Equal(t, "0", r.FormValue("temperature"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "sample.webm", header.Filename)

		w.Write([]byte(`{"text": "thank you for calling"}`))
	}))
	defer srv.Close()

	svc := NewTranscriptionService(config.OpenAIConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		WhisperModel:   "whisper-1",
		TimeoutSeconds: 5,
	})

	text, err := svc.Transcribe(writeTempAudio(t))
	require.NoError(t, err)
	assert.Equal(t, "thank you for calling", text)
}

func TestTranscribeProviderErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "bad audio"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	svc := NewTranscriptionService(config.OpenAIConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		WhisperModel:   "whisper-1",
		TimeoutSeconds: 5,
	})

	_, err := svc.Transcribe(writeTempAudio(t))
	assert.Error(t, err)
}

func TestTranscribeMissingFile(t *testing.T) {
	svc := NewTranscriptionService(config.OpenAIConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1})
	_, err := svc.Transcribe("/nonexistent/audio.webm")
	assert.Error(t, err)
}
