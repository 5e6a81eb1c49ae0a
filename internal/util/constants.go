package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Transcription provider limits.
const (
	MaxAudioSizeMB = 25
	MaxTTSChars    = 4096
)

var (
	// Extensions the transcription provider accepts.
	AllowedAudioExtensions = []string{".mp3", ".mp4", ".mpeg", ".mpga", ".m4a", ".wav", ".webm"}
)
