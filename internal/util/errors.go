package util

import "errors"

var (
	ErrEmailRegistered       = errors.New("user already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrProgressNotFound      = errors.New("progress not found")
	ErrProgressInitialized   = errors.New("progress already initialized")
	ErrLessonNotFound        = errors.New("lesson not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrScenarioNotFound      = errors.New("scenario not found")
	ErrCertificationNotFound = errors.New("no certification found")
	ErrCertificationExists   = errors.New("certification already issued")
	ErrInvalidAudioFormat    = errors.New("invalid audio format, supported formats: mp3, mp4, mpeg, mpga, m4a, wav, webm")
	ErrAudioTooLarge         = errors.New("audio file is too large, maximum size: 25MB")
	ErrTextTooLong           = errors.New("text exceeds maximum length of 4096 characters")
	ErrEmptyText             = errors.New("text cannot be empty")
	ErrInvalidVoice          = errors.New("invalid voice, supported voices: alloy, echo, fable, onyx, nova, shimmer")
	ErrInvalidSpeed          = errors.New("speed must be between 0.25 and 4.0")
	ErrInvalidTTSModel       = errors.New("invalid model, supported models: tts-1, tts-1-hd")
)
