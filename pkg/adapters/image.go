package adapters

import (
	"context"
	"fmt"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"

	"github.com/shouni/go-story-kit/pkg/domain"
	"github.com/shouni/go-story-kit/pkg/flow"
)

// PanelGenerator は1枚の画像生成を担うインターフェースです。
type PanelGenerator interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// ImageAdapter は、gemini-image-kit のジェネレーターを画像モデルとして適合させる構造体です。
type ImageAdapter struct {
	generator PanelGenerator
}

// NewImageAdapter は新しい ImageAdapter インスタンスを生成します。
func NewImageAdapter(generator PanelGenerator) *ImageAdapter {
	return &ImageAdapter{generator: generator}
}

// Render は1件の画像要求を実行してアセット参照を返すのだ。
func (a *ImageAdapter) Render(ctx context.Context, req flow.ImageRequest) (*domain.AssetRef, error) {
	resp, err := a.generator.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		AspectRatio:    req.AspectRatio,
		ReferenceURL:   req.ReferencePath,
	})
	if err != nil {
		return nil, fmt.Errorf("画像の生成に失敗したのだ (%s): %w", req.Label, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("画像の生成に失敗したのだ (%s): %w", req.Label, ErrEmptyPayload)
	}

	return &domain.AssetRef{
		Label:       req.Label,
		Data:        resp.Data,
		MimeType:    resp.MimeType,
		AspectRatio: req.AspectRatio,
	}, nil
}
