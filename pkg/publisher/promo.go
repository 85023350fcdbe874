package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-story-kit/pkg/domain"
)

const (
	// PromoFileName は保存されるプロモ企画のファイル名です。
	PromoFileName = "affiliate.json"

	promoDigestName = "affiliate.md"
)

// PublishPromo はプロモ企画と生成済み画像を一括して書き出すのだ。
// 画像が欠けたラベルはダイジェストにプロンプトだけが残るのだ。
func (p *StoryPublisher) PublishPromo(ctx context.Context, result *domain.AffiliateResult, media map[string]*domain.AssetRef, opts Options) (PublishResult, error) {
	out := PublishResult{}

	promoPath, err := ResolveOutputPath(opts.OutputDir, PromoFileName)
	if err != nil {
		return out, err
	}
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return out, fmt.Errorf("プロモ企画のエンコードに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, promoPath, bytes.NewReader(encoded), "application/json"); err != nil {
		return out, fmt.Errorf("プロモ企画の書き込みに失敗しました: %w", err)
	}
	out.StoryJSONPath = promoPath

	mediaDir, err := ResolveOutputPath(opts.OutputDir, defaultMediaDir)
	if err != nil {
		return out, err
	}
	savedPaths, err := p.saveMedia(ctx, media, mediaDir)
	if err != nil {
		return out, fmt.Errorf("メディアの書き込みに失敗しました: %w", err)
	}
	out.MediaPaths = savedPaths

	content := p.buildPromoMarkdown(result, media)

	markdownPath, err := ResolveOutputPath(opts.OutputDir, promoDigestName)
	if err != nil {
		return out, err
	}
	if err := p.writer.Write(ctx, markdownPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return out, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	out.MarkdownPath = markdownPath

	return out, nil
}

// buildPromoMarkdown はプロモ企画を人が確認できるダイジェストに整形します。
func (p *StoryPublisher) buildPromoMarkdown(result *domain.AffiliateResult, media map[string]*domain.AssetRef) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", result.Summary))
	sb.WriteString(fmt.Sprintf("%s\n\n", result.Caption))

	for _, asset := range result.Assets {
		sb.WriteString(fmt.Sprintf("## %s\n\n", asset.Label))
		sb.WriteString(fmt.Sprintf("- image prompt: %s\n", asset.ImagePrompt))
		sb.WriteString(fmt.Sprintf("- video prompt: %s\n", asset.VideoPrompt))

		if ref, found := media[asset.Label]; found {
			mediaPath := path.Join(defaultMediaDir, asset.Label+ref.FileExt())
			sb.WriteString(fmt.Sprintf("\n![%s](%s)\n", filepath.Base(mediaPath), mediaPath))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
