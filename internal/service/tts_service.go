package service

import (
	"bytes"
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/util"
	"callcenter_english_backend/pkg/logger"
	"callcenter_english_backend/pkg/monitoring"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Voices the synthesis provider supports.
var TTSVoices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}

var ttsModels = []string{"tts-1", "tts-1-hd"}

const (
	MinTTSSpeed     = 0.25
	MaxTTSSpeed     = 4.0
	DefaultTTSSpeed = 1.0
	DefaultTTSVoice = "alloy"
)

// TTSService synthesizes speech and hands the audio back as a base64
// data URI. Clips are cached in redis keyed by the request parameters
// so repeated reads of the same lesson text do not hit the provider
// again; when redis is disabled every request synthesizes fresh.
type TTSService struct {
	mu     sync.RWMutex
	config config.OpenAIConfig

	client   *http.Client
	redis    *redis.Client
	cacheTTL time.Duration
	audioDir string
}

func NewTTSService(cfg *config.Config, redisClient *redis.Client) *TTSService {
	timeout := time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ttl := time.Duration(cfg.Redis.TTSCacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TTSService{
		config:   cfg.OpenAI,
		client:   &http.Client{Timeout: timeout},
		redis:    redisClient,
		cacheTTL: ttl,
		audioDir: cfg.Upload.AudioOutDir,
	}
}

func (s *TTSService) SetConfig(cfg config.OpenAIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

func (s *TTSService) cfg() config.OpenAIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Voices lists the supported voice names.
func (s *TTSService) Voices() []string {
	return TTSVoices
}

// ValidateTTSRequest applies the provider's input limits. Empty voice,
// model or zero speed are filled with defaults rather than rejected.
func (s *TTSService) ValidateTTSRequest(text string, voice *string, speed *float64, ttsModel *string) error {
	if text == "" {
		return util.ErrEmptyText
	}
	if len(text) > util.MaxTTSChars {
		return util.ErrTextTooLong
	}

	if *voice == "" {
		*voice = DefaultTTSVoice
	}
	valid := false
	for _, v := range TTSVoices {
		if v == *voice {
			valid = true
			break
		}
	}
	if !valid {
		return util.ErrInvalidVoice
	}

	if *speed == 0 {
		*speed = DefaultTTSSpeed
	}
	if *speed < MinTTSSpeed || *speed > MaxTTSSpeed {
		return util.ErrInvalidSpeed
	}

	if *ttsModel == "" {
		*ttsModel = s.cfg().TTSModel
		if *ttsModel == "" {
			*ttsModel = "tts-1"
		}
	}
	valid = false
	for _, m := range ttsModels {
		if m == *ttsModel {
			valid = true
			break
		}
	}
	if !valid {
		return util.ErrInvalidTTSModel
	}

	return nil
}

type ttsRequest struct {
	Model string  `json:"model"`
	Input string  `json:"input"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
}

// SynthesisResult is the payload handed back to clients: an inline
// audio clip plus the parameters that produced it.
type SynthesisResult struct {
	AudioData string  `json:"audioData"`
	Format    string  `json:"format"`
	Voice     string  `json:"voice"`
	Speed     float64 `json:"speed"`
	Model     string  `json:"model"`
	Cached    bool    `json:"cached"`
}

func cacheKey(text, voice string, speed float64, ttsModel string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%.2f|%s", text, voice, speed, ttsModel)))
	return fmt.Sprintf("tts:%x", sum)
}

// Synthesize converts text to speech. The provider response is staged
// through a temp file in the audio output directory, read back,
// base64-encoded, and the temp file removed on every path.
func (s *TTSService) Synthesize(ctx context.Context, text, voice string, speed float64, ttsModel string) (*SynthesisResult, error) {
	if err := s.ValidateTTSRequest(text, &voice, &speed, &ttsModel); err != nil {
		return nil, err
	}

	key := cacheKey(text, voice, speed, ttsModel)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			monitoring.ProviderCallCounter.WithLabelValues("tts", "cache_hit").Inc()
			return &SynthesisResult{
				AudioData: cached,
				Format:    "mp3",
				Voice:     voice,
				Speed:     speed,
				Model:     ttsModel,
				Cached:    true,
			}, nil
		}
	}

	audioBytes, err := s.callProvider(text, voice, speed, ttsModel)
	if err != nil {
		monitoring.ProviderCallCounter.WithLabelValues("tts", "error").Inc()
		return nil, err
	}
	monitoring.ProviderCallCounter.WithLabelValues("tts", "ok").Inc()

	tempPath := filepath.Join(s.audioDir, util.UniqueFilename("speech.mp3"))
	if err := os.WriteFile(tempPath, audioBytes, 0644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}

	data, err := os.ReadFile(tempPath)
	util.CleanupFile(tempPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	dataURI := "data:audio/mp3;base64," + base64.StdEncoding.EncodeToString(data)

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, dataURI, s.cacheTTL).Err(); err != nil {
			logger.Log.Warn("failed to cache TTS audio", zap.Error(err))
		}
	}

	return &SynthesisResult{
		AudioData: dataURI,
		Format:    "mp3",
		Voice:     voice,
		Speed:     speed,
		Model:     ttsModel,
	}, nil
}

func (s *TTSService) callProvider(text, voice string, speed float64, ttsModel string) ([]byte, error) {
	cfg := s.cfg()

	jsonData, err := json.Marshal(ttsRequest{
		Model: ttsModel,
		Input: text,
		Voice: voice,
		Speed: speed,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", cfg.BaseURL+"/audio/speech", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS API error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}
