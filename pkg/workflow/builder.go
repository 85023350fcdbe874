package workflow

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	textbuilder "github.com/shouni/go-text-format/pkg/builder"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/go-story-kit/pkg/adapters"
	"github.com/shouni/go-story-kit/pkg/flow"
	"github.com/shouni/go-story-kit/pkg/parser"
	"github.com/shouni/go-story-kit/pkg/publisher"
)

// Builder は、ワークフローの各フローとその依存を構築・管理します。
// クライアント類は一度だけ初期化され、全フローで共有されます。
type Builder struct {
	cfg         Config
	httpClient  httpkit.ClientInterface
	aiClient    gemini.GenerativeModel
	genaiClient *genai.Client
	reader      remoteio.InputReader
	writer      remoteio.OutputWriter
	imgGen      imagekit.ImageGenerator
}

// NewBuilder は設定と共有クライアント群から新しい Builder を初期化します。
func NewBuilder(cfg Config, httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel, genaiClient *genai.Client, reader remoteio.InputReader, writer remoteio.OutputWriter) (*Builder, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient は必須です")
	}
	if genaiClient == nil {
		return nil, fmt.Errorf("genaiClient は必須です")
	}
	if reader == nil {
		return nil, fmt.Errorf("InputReader は必須です")
	}
	if writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}

	imgGen, err := initializeImageGenerator(reader, httpClient, aiClient, cfg.ImageModel)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}

	return &Builder{
		cfg:         cfg,
		httpClient:  httpClient,
		aiClient:    aiClient,
		genaiClient: genaiClient,
		reader:      reader,
		writer:      writer,
		imgGen:      imgGen,
	}, nil
}

// BuildStoryFlow はストーリー生成フローを作成するのだ。
func (b *Builder) BuildStoryFlow(notify flow.ProgressFunc) *flow.StoryFlow {
	script := adapters.NewScriptAdapter(b.aiClient, b.cfg.ScriptModel)
	return flow.NewStoryFlow(script, flow.NewTracker(notify))
}

// BuildAffiliateFlow はプロモ生成フローを作成するのだ。
func (b *Builder) BuildAffiliateFlow(notify flow.ProgressFunc) *flow.AffiliateFlow {
	vision := adapters.NewVisionAdapter(b.genaiClient, b.reader, b.cfg.VisionModel)
	image := adapters.NewImageAdapter(b.imgGen)
	limiter := rate.NewLimiter(rate.Every(b.cfg.RateInterval), DefaultRateBurst)
	return flow.NewAffiliateFlow(vision, image, flow.NewTracker(notify), limiter)
}

// BuildEnricher はシーン可視化とカバー生成を担う Enricher を作成するのだ。
func (b *Builder) BuildEnricher() *flow.Enricher {
	image := adapters.NewImageAdapter(b.imgGen)
	imgCache := cache.New(cache.NoExpiration, cacheCleanupInterval)
	return flow.NewEnricher(image, imgCache)
}

// BuildVoiceFlow はナレーション合成フローを作成するのだ。
func (b *Builder) BuildVoiceFlow() *flow.VoiceFlow {
	speech := adapters.NewSpeechAdapter(b.genaiClient, b.cfg.SpeechModel, b.cfg.VoiceName)
	clipCache := cache.New(cache.NoExpiration, cacheCleanupInterval)
	return flow.NewVoiceFlow(speech, b.cfg.VoiceName, clipCache)
}

// BuildPublisher は成果物のパブリッシャーを作成するのだ。
func (b *Builder) BuildPublisher() (*publisher.StoryPublisher, error) {
	htmlCfg := textbuilder.BuilderConfig{
		EnableHardWraps: true,
		Mode:            "article",
	}
	md2htmlBuilder, err := textbuilder.NewBuilder(htmlCfg)
	if err != nil {
		return nil, fmt.Errorf("md2htmlBuilderの初期化に失敗しました: %w", err)
	}
	md2htmlRunner, err := md2htmlBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("md2htmlrunnerの初期化に失敗しました: %w", err)
	}

	return publisher.NewStoryPublisher(b.writer, md2htmlRunner), nil
}

// BuildStoryParser は保存済みストーリーの読み込みパーサーを作成するのだ。
func (b *Builder) BuildStoryParser() *parser.StoryParser {
	return parser.NewStoryParser(b.reader)
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeGenAIClient はマルチモーダルと音声合成に使う genai クライアントを初期化します。
func InitializeGenAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの初期化に失敗しました: %w", err)
	}
	return client, nil
}

// initializeImageGenerator は、画像キャッシュを含む ImageGenerator を初期化します。
func initializeImageGenerator(reader remoteio.InputReader, httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel, model string) (imagekit.ImageGenerator, error) {
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imagekit.NewGeminiImageCore(
		aiClient,
		reader,
		httpClient,
		imgCache,
		defaultTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗しました: %w", err)
	}

	imgGen, err := imagekit.NewGeminiGenerator(
		model,
		core,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiGenerator の初期化に失敗しました: %w", err)
	}

	return imgGen, nil
}
