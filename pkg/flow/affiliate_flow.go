package flow

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/shouni/go-story-kit/pkg/domain"
	"github.com/shouni/go-story-kit/pkg/parser"
	"github.com/shouni/go-story-kit/pkg/prompts"
)

// AffiliateOutcome は、プロモ企画と生成できた画像群をまとめた実行結果です。
// Media はラベルをキーとし、生成に失敗したアセットのエントリは存在しません。
type AffiliateOutcome struct {
	Result *domain.AffiliateResult
	Media  map[string]*domain.AssetRef
}

// AffiliateFlow は、商品プロモーションの多段生成フローを実行する構造体です。
// 主呼び出し（企画生成）の失敗はフロー全体の失敗ですが、
// 従属する画像生成は1件ずつのベストエフォートで、欠けがあっても完走します。
type AffiliateFlow struct {
	vision  VisionModel
	image   ImageModel
	builder *prompts.AffiliatePromptBuilder
	tracker *Tracker
	limiter *rate.Limiter
}

// NewAffiliateFlow は新しい AffiliateFlow インスタンスを生成します。
func NewAffiliateFlow(vision VisionModel, image ImageModel, tracker *Tracker, limiter *rate.Limiter) *AffiliateFlow {
	return &AffiliateFlow{
		vision:  vision,
		image:   image,
		builder: prompts.NewAffiliatePromptBuilder(),
		tracker: tracker,
		limiter: limiter,
	}
}

// Run はプロモ企画の生成と、企画に従属する画像列の逐次生成を実行するのだ。
// 企画が得られなければ従属呼び出しは一切行わず失敗で畳むのだ。
func (f *AffiliateFlow) Run(ctx context.Context, req domain.AffiliateRequest) (*AffiliateOutcome, error) {
	req.Clamp()

	if err := f.tracker.Begin(); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "プロモ企画の生成を開始します",
		"product", req.ProductName, "style", req.Style, "scenes", req.NumScenes)

	call := f.builder.Build(req)

	raw, err := f.vision.Interpret(ctx, call)
	if err != nil {
		f.tracker.Fail()
		return nil, fmt.Errorf("企画モデルの呼び出しに失敗しました: %w", err)
	}

	result := &domain.AffiliateResult{}
	if err := parser.DecodeInto(raw, result); err != nil {
		f.tracker.Fail()
		return nil, err
	}

	if err := f.tracker.StartMedia(len(result.Assets)); err != nil {
		f.tracker.Fail()
		return nil, err
	}

	outcome := &AffiliateOutcome{
		Result: result,
		Media:  make(map[string]*domain.AssetRef, len(result.Assets)),
	}

	// 画像はレート制限下で1枚ずつ生成するのだ。失敗したラベルは飛ばして続行なのだ。
	for i, asset := range result.Assets {
		if err := f.limiter.Wait(ctx); err != nil {
			f.tracker.Fail()
			return nil, fmt.Errorf("レート制限の待機が中断されました: %w", err)
		}

		ref, err := f.image.Render(ctx, ImageRequest{
			Label:          asset.Label,
			Prompt:         prompts.BuildVisualPrompt(asset.ImagePrompt),
			NegativePrompt: prompts.NegativeVisualPrompt,
			AspectRatio:    AspectPortrait,
			ReferencePath:  req.ProductImagePath,
		})
		if err != nil {
			slog.WarnContext(ctx, "画像の生成に失敗したため飛ばすのだ", "label", asset.Label, "error", err)
		} else {
			outcome.Media[asset.Label] = ref
		}

		if err := f.tracker.Advance(i + 1); err != nil {
			f.tracker.Fail()
			return nil, err
		}
	}

	f.tracker.Complete()
	slog.InfoContext(ctx, "プロモ生成が完了したのだ",
		"assets", len(result.Assets), "generated", len(outcome.Media))
	return outcome, nil
}
