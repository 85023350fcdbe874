package flow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-story-kit/pkg/domain"
	"github.com/shouni/go-story-kit/pkg/prompts"
)

// カバー画像のラベルです。公開時のファイル名にもそのまま使われます。
const (
	CoverTikTok  = "cover-tiktok"
	CoverYouTube = "cover-youtube"
)

// Enricher は、確定済みストーリーへの追加メディア生成を担う構造体なのだ。
// シーン可視化は scene とアスペクト比の組をキーにキャッシュされ、
// 同一キーの再要求は再生成ではなくキャッシュ返却になるのだ。
// キャッシュの無効化は refresh 指定による明示的な上書きのみなのだよ。
type Enricher struct {
	image ImageModel
	cache *cache.Cache
	group singleflight.Group
}

// NewEnricher は新しい Enricher インスタンスを生成します。
func NewEnricher(image ImageModel, imgCache *cache.Cache) *Enricher {
	return &Enricher{
		image: image,
		cache: imgCache,
	}
}

// Visualize は指定シーンの画像を生成します。refresh が偽でキャッシュに
// ヒットした場合、モデル呼び出しは発生しません。同一キーの並行要求は
// singleflight により1回の生成へ合流します。
func (e *Enricher) Visualize(ctx context.Context, scene domain.Scene, ratio string, refresh bool) (*domain.AssetRef, error) {
	if ratio == "" {
		ratio = AspectPortrait
	}
	key := fmt.Sprintf("%s|%s", scene.Label(), ratio)

	if !refresh {
		if cached, found := e.cache.Get(key); found {
			slog.DebugContext(ctx, "キャッシュ済みの画像を返すのだ", "key", key)
			return cached.(*domain.AssetRef), nil
		}
	}

	v, err, _ := e.group.Do(key, func() (any, error) {
		ref, err := e.image.Render(ctx, ImageRequest{
			Label:          scene.Label(),
			Prompt:         prompts.BuildVisualPrompt(scene.StructuredPrompt1.Text()),
			NegativePrompt: prompts.NegativeVisualPrompt,
			AspectRatio:    ratio,
		})
		if err != nil {
			return nil, fmt.Errorf("シーン画像の生成に失敗しました (%s): %w", scene.Label(), err)
		}
		e.cache.Set(key, ref, cache.NoExpiration)
		return ref, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.AssetRef), nil
}

// CoverSet は縦型と横型のカバー画像を並行生成します。
// どちらか一方でも失敗した場合はエラーを返します。
func (e *Enricher) CoverSet(ctx context.Context, result *domain.StoryResult) (map[string]*domain.AssetRef, error) {
	covers := map[string]*domain.AssetRef{}
	specs := []struct {
		label  string
		prompt string
		ratio  string
	}{
		{CoverTikTok, result.TikTokCover, AspectPortrait},
		{CoverYouTube, result.YouTubeCover, AspectLandscape},
	}

	g, gctx := errgroup.WithContext(ctx)
	refs := make([]*domain.AssetRef, len(specs))
	for i, spec := range specs {
		g.Go(func() error {
			ref, err := e.image.Render(gctx, ImageRequest{
				Label:          spec.label,
				Prompt:         prompts.BuildVisualPrompt(spec.prompt),
				NegativePrompt: prompts.NegativeVisualPrompt,
				AspectRatio:    spec.ratio,
			})
			if err != nil {
				return fmt.Errorf("カバー画像の生成に失敗しました (%s): %w", spec.label, err)
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, spec := range specs {
		covers[spec.label] = refs[i]
	}
	return covers, nil
}
