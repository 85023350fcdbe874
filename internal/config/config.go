package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"

	"github.com/shouni/go-story-kit/pkg/workflow"
)

// デフォルト値の定義なのだ
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultOutputDir   = "output/story"      // 成果物のデフォルト保存先なのだ
	DefaultAccountDB   = "data/accounts.db"  // 利用者データベースのデフォルトパスなのだ
	DefaultStoryFile   = "output/story/story.json"
)

// Config はアプリケーション全体の環境設定（APIキーやモデル設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey  string
	ScriptModel   string
	VisionModel   string
	ImageModel    string
	SpeechModel   string
	VoiceName     string
	AccountDBPath string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey:  envutil.GetEnv("GEMINI_API_KEY", ""),
		ScriptModel:   envutil.GetEnv("GEMINI_MODEL", workflow.DefaultScriptModel),
		VisionModel:   envutil.GetEnv("VISION_GEMINI_MODEL", workflow.DefaultVisionModel),
		ImageModel:    envutil.GetEnv("IMAGE_GEMINI_MODEL", workflow.DefaultImageModel),
		SpeechModel:   envutil.GetEnv("SPEECH_GEMINI_MODEL", workflow.DefaultSpeechModel),
		VoiceName:     envutil.GetEnv("SPEECH_VOICE", workflow.DefaultVoiceName),
		AccountDBPath: envutil.GetEnv("ACCOUNT_DB_PATH", DefaultAccountDB),
	}
	return cfg
}

// WorkflowConfig はこの設定をフロー構築用の設定へ写し替えるのだ。
func (c *Config) WorkflowConfig() workflow.Config {
	wcfg := workflow.NewConfig(c.GeminiAPIKey)
	wcfg.ScriptModel = c.ScriptModel
	wcfg.VisionModel = c.VisionModel
	wcfg.ImageModel = c.ImageModel
	wcfg.SpeechModel = c.SpeechModel
	wcfg.VoiceName = c.VoiceName
	if c.Options.HTTPTimeout > 0 {
		wcfg.RequestTimeout = c.Options.HTTPTimeout
	}
	return wcfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ストーリー生成関連
	Title       string // --title
	NumScenes   int    // --scenes
	VisualStyle string // --style
	Language    string // --language

	// プロモ生成関連
	ProductName  string // --product
	PromoStyle   string // --promo-style
	Instructions string // --instructions
	ProductImage string // --product-image
	ModelImage   string // --model-image

	// 追加生成関連
	StoryFile   string // --from: 保存済み story.json のパス
	SceneNumber int    // --scene
	AspectRatio string // --ratio
	Refresh     bool   // --refresh

	// 生成結果の出力設定
	OutputDir string // --output-dir

	// AI挙動設定
	ScriptModel string // --model
	ImageModel  string // --image-model

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
