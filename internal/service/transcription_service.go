package service

import (
	"bytes"
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/util"
	"callcenter_english_backend/pkg/monitoring"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TranscriptionService converts recorded audio to text through the
// provider's transcription endpoint. Unlike the feedback surfaces, a
// transcription failure is propagated: there is nothing sensible to
// substitute for the learner's own words.
type TranscriptionService struct {
	mu     sync.RWMutex
	config config.OpenAIConfig
	client *http.Client
}

func NewTranscriptionService(cfg config.OpenAIConfig) *TranscriptionService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &TranscriptionService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *TranscriptionService) SetConfig(cfg config.OpenAIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

func (s *TranscriptionService) cfg() config.OpenAIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// ValidateAudioUpload checks extension and size before any bytes leave
// the server.
func ValidateAudioUpload(filename string, sizeBytes int64) error {
	if !util.ValidateAudioExtension(filename) {
		return util.ErrInvalidAudioFormat
	}
	if sizeBytes > util.MaxAudioSizeMB*1024*1024 {
		return util.ErrAudioTooLarge
	}
	return nil
}

// Transcribe uploads the audio file at path and returns the
// recognized English text.
func (s *TranscriptionService) Transcribe(audioPath string) (string, error) {
	cfg := s.cfg()

	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}

	fields := map[string]string{
		"model":           cfg.WhisperModel,
		"language":        "en",
		"response_format": "json",
		"temperature":     "0",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", cfg.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		monitoring.ProviderCallCounter.WithLabelValues("transcription", "error").Inc()
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		monitoring.ProviderCallCounter.WithLabelValues("transcription", "error").Inc()
		return "", fmt.Errorf("transcription API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result transcriptionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		monitoring.ProviderCallCounter.WithLabelValues("transcription", "error").Inc()
		return "", err
	}

	monitoring.ProviderCallCounter.WithLabelValues("transcription", "ok").Inc()
	return result.Text, nil
}
