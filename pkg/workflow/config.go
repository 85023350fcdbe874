package workflow

import (
	"time"
)

// デフォルト値の定義なのだ
const (
	DefaultScriptModel = "gemini-3-pro-preview"
	DefaultVisionModel = "gemini-3-pro-preview"
	DefaultImageModel  = "gemini-2.5-flash-image"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
	DefaultVoiceName   = "Kore"

	DefaultRateInterval = 10 * time.Second
	DefaultRateBurst    = 2

	defaultCacheExpiration = 5 * time.Minute
	cacheCleanupInterval   = 15 * time.Minute
	defaultTTL             = 5 * time.Minute

	defaultGeminiTemperature = float32(0.2)
)

// Config は各フローを動作させるための基本設定なのだ。
type Config struct {
	// --- AI Model Settings ---
	GeminiAPIKey string
	ScriptModel  string
	VisionModel  string
	ImageModel   string
	SpeechModel  string
	VoiceName    string

	// --- Generation Settings ---
	RateInterval time.Duration

	// --- Timeout & Retries ---
	RequestTimeout time.Duration
}

// NewConfig はデフォルト値で初期化された Config を作成し、必要最小限の値をセットして返すのだ。
func NewConfig(apiKey string) Config {
	cfg := DefaultConfig()
	cfg.GeminiAPIKey = apiKey
	return cfg
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数なのだ。
func DefaultConfig() Config {
	return Config{
		ScriptModel:    DefaultScriptModel,
		VisionModel:    DefaultVisionModel,
		ImageModel:     DefaultImageModel,
		SpeechModel:    DefaultSpeechModel,
		VoiceName:      DefaultVoiceName,
		RateInterval:   DefaultRateInterval,
		RequestTimeout: 5 * time.Minute,
	}
}
