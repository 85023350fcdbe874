package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-story-kit/internal/builder"
	"github.com/shouni/go-story-kit/internal/config"
	"github.com/shouni/go-story-kit/pkg/account"
	"github.com/shouni/go-story-kit/pkg/domain"
	"github.com/shouni/go-story-kit/pkg/flow"
	"github.com/shouni/go-story-kit/pkg/publisher"
)

// ExecuteStory は、ストーリー生成と保存（Phase 1 & 2）を実行するのだ。
func ExecuteStory(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setup(ctx, cfg)
	if err != nil {
		return err
	}

	req := domain.StoryRequest{
		Title:       cfg.Options.Title,
		NumScenes:   cfg.Options.NumScenes,
		VisualStyle: domain.VisualStyle(cfg.Options.VisualStyle),
		Language:    domain.Language(cfg.Options.Language),
	}

	storyFlow := appCtx.Flows.BuildStoryFlow(logProgress)
	story, err := storyFlow.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("ストーリー生成に失敗したのだ: %w", err)
	}

	result, err := publishStory(ctx, appCtx, story, nil)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "ストーリーの生成と保存が完了したのだ！",
		"story", result.StoryJSONPath, "digest", result.MarkdownPath)
	return nil
}

// ExecuteAffiliate は、プロモ企画の生成と画像列の逐次生成、保存を実行するのだ。
func ExecuteAffiliate(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setup(ctx, cfg)
	if err != nil {
		return err
	}

	req := domain.AffiliateRequest{
		ProductName:      cfg.Options.ProductName,
		Style:            domain.PromptStyle(cfg.Options.PromoStyle),
		NumScenes:        cfg.Options.NumScenes,
		Instructions:     cfg.Options.Instructions,
		ProductImagePath: cfg.Options.ProductImage,
		ModelImagePath:   cfg.Options.ModelImage,
	}

	affiliateFlow := appCtx.Flows.BuildAffiliateFlow(logProgress)
	outcome, err := affiliateFlow.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("プロモ生成に失敗したのだ: %w", err)
	}

	pub, err := appCtx.Flows.BuildPublisher()
	if err != nil {
		return err
	}
	result, err := pub.PublishPromo(ctx, outcome.Result, outcome.Media,
		publisher.Options{OutputDir: cfg.Options.OutputDir})
	if err != nil {
		return fmt.Errorf("プロモの保存に失敗したのだ: %w", err)
	}

	slog.InfoContext(ctx, "プロモの生成と保存が完了したのだ！",
		"plan", result.StoryJSONPath, "media", len(result.MediaPaths))
	return nil
}

// ExecuteVisualize は、保存済みストーリーの1シーンを画像化するのだ。
func ExecuteVisualize(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setup(ctx, cfg)
	if err != nil {
		return err
	}

	story, scene, err := loadScene(ctx, appCtx, cfg.Options.StoryFile, cfg.Options.SceneNumber)
	if err != nil {
		return err
	}

	enricher := appCtx.Flows.BuildEnricher()
	ref, err := enricher.Visualize(ctx, *scene, cfg.Options.AspectRatio, cfg.Options.Refresh)
	if err != nil {
		return fmt.Errorf("シーンの画像化に失敗したのだ: %w", err)
	}

	outputPath, err := writeAsset(ctx, appCtx, ref)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "シーンの画像化が完了したのだ！",
		"title", story.Title, "scene", scene.Number, "path", outputPath)
	return nil
}

// ExecuteVoice は、保存済みストーリーの1シーンのナレーションを合成するのだ。
func ExecuteVoice(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setup(ctx, cfg)
	if err != nil {
		return err
	}

	_, scene, err := loadScene(ctx, appCtx, cfg.Options.StoryFile, cfg.Options.SceneNumber)
	if err != nil {
		return err
	}

	voiceFlow := appCtx.Flows.BuildVoiceFlow()
	ref, err := voiceFlow.Narrate(ctx, *scene)
	if err != nil {
		if errors.Is(err, flow.ErrNarrationActive) {
			slog.WarnContext(ctx, "ナレーション合成が進行中のため何もしないのだ")
			return nil
		}
		return fmt.Errorf("ナレーション合成に失敗したのだ: %w", err)
	}

	outputPath, err := writeAsset(ctx, appCtx, ref)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "ナレーション合成が完了したのだ！", "scene", scene.Number, "path", outputPath)
	return nil
}

// ExecuteCovers は、保存済みストーリーのカバー画像を縦横2枚生成するのだ。
func ExecuteCovers(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setup(ctx, cfg)
	if err != nil {
		return err
	}

	parser := appCtx.Flows.BuildStoryParser()
	story, err := parser.ParseFromPath(ctx, cfg.Options.StoryFile)
	if err != nil {
		return err
	}

	enricher := appCtx.Flows.BuildEnricher()
	covers, err := enricher.CoverSet(ctx, story)
	if err != nil {
		return fmt.Errorf("カバー生成に失敗したのだ: %w", err)
	}

	for _, ref := range covers {
		if _, err := writeAsset(ctx, appCtx, ref); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "カバー生成が完了したのだ！", "title", story.Title, "covers", len(covers))
	return nil
}

// RequireSession はログイン済みであることを検査し、識別子を返すのだ。
func RequireSession(ctx context.Context, cfg *config.Config) (string, error) {
	gate, closeStore, err := builder.OpenAccountGate(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer closeStore()

	identity, err := gate.Current(ctx)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return "", fmt.Errorf("ログインしていないのだ。先に `account login` を実行してほしいのだ")
		}
		return "", err
	}
	return identity, nil
}

// setup は共有コンポーネントを初期化し、ログイン済みであることを確認するのだ。
func setup(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	identity, err := RequireSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "ログイン済みセッションで実行するのだ", "identity", identity)

	return builder.BuildAppContext(ctx, cfg)
}

// publishStory はストーリーとメディアを保存するのだ。
func publishStory(ctx context.Context, appCtx *builder.AppContext, story *domain.StoryResult, media map[string]*domain.AssetRef) (publisher.PublishResult, error) {
	pub, err := appCtx.Flows.BuildPublisher()
	if err != nil {
		return publisher.PublishResult{}, err
	}

	result, err := pub.Publish(ctx, story, media, publisher.Options{OutputDir: appCtx.Options.OutputDir})
	if err != nil {
		return publisher.PublishResult{}, fmt.Errorf("ストーリーの保存に失敗したのだ: %w", err)
	}
	return result, nil
}

// loadScene は保存済みストーリーを読み込み、指定番号のシーンを取り出すのだ。
func loadScene(ctx context.Context, appCtx *builder.AppContext, storyPath string, number int) (*domain.StoryResult, *domain.Scene, error) {
	parser := appCtx.Flows.BuildStoryParser()
	story, err := parser.ParseFromPath(ctx, storyPath)
	if err != nil {
		return nil, nil, err
	}

	scene := story.SceneByNumber(number)
	if scene == nil {
		return nil, nil, fmt.Errorf("シーン %d が見つからないのだ (全 %d シーン)", number, len(story.Scenes))
	}
	return story, scene, nil
}

// writeAsset は単体アセットを出力ディレクトリへ書き出すのだ。
func writeAsset(ctx context.Context, appCtx *builder.AppContext, ref *domain.AssetRef) (string, error) {
	outputPath, err := publisher.ResolveOutputPath(appCtx.Options.OutputDir, ref.Label+ref.FileExt())
	if err != nil {
		return "", err
	}
	if err := appCtx.Writer.Write(ctx, outputPath, bytes.NewReader(ref.Data), ref.MimeType); err != nil {
		return "", fmt.Errorf("アセットの保存に失敗したのだ (%s): %w", ref.Label, err)
	}
	return outputPath, nil
}

// logProgress は状態遷移を構造化ログへ流すのだ。
func logProgress(s flow.Status) {
	slog.Info("フローの状態が変わったのだ", "phase", s.Phase.String(), "index", s.Index, "total", s.Total)
}
