package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"

	"github.com/shouni/go-story-kit/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult はパブリッシュ処理で生成されたファイルの情報を保持します。
type PublishResult struct {
	StoryJSONPath string   // 構造化ストーリーの保存先
	MarkdownPath  string   // ダイジェストMarkdownの保存先
	HTMLPath      string   // 変換されたHTMLの保存先（変換なしなら空）
	MediaPaths    []string // 保存された全メディアのパスリスト
}

const (
	// StoryFileName は再読込の入力になる構造化ストーリーのファイル名です。
	StoryFileName = "story.json"

	defaultDigestName  = "story.md"
	defaultMediaDir    = "media"
	verificationHeader = "Sources"
)

// StoryPublisher は成果物の永続化とフォーマット変換を担います。
// 書き込み先はローカルディレクトリとGCSの双方に対応します。
type StoryPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewStoryPublisher は新しい StoryPublisher インスタンスを生成します。
// htmlRunner が nil の場合、HTML変換は行われません。
func NewStoryPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *StoryPublisher {
	return &StoryPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish はストーリーJSON、メディア、ダイジェストを一括して書き出すのだ。
// media はラベルをキーとするアセット集合で、欠けたラベルは黙って飛ばされるのだ。
func (p *StoryPublisher) Publish(ctx context.Context, story *domain.StoryResult, media map[string]*domain.AssetRef, opts Options) (PublishResult, error) {
	result := PublishResult{}

	storyPath, err := ResolveOutputPath(opts.OutputDir, StoryFileName)
	if err != nil {
		return result, err
	}
	result.StoryJSONPath = storyPath

	// 1. 構造化ストーリーの保存。再読込で追加生成コマンドの入力になるのだ。
	encoded, err := json.MarshalIndent(story, "", "  ")
	if err != nil {
		return result, fmt.Errorf("ストーリーJSONのエンコードに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, storyPath, bytes.NewReader(encoded), "application/json"); err != nil {
		return result, fmt.Errorf("ストーリーJSONの書き込みに失敗しました: %w", err)
	}

	// 2. メディアの保存
	mediaDir, err := ResolveOutputPath(opts.OutputDir, defaultMediaDir)
	if err != nil {
		return result, err
	}
	savedPaths, err := p.saveMedia(ctx, media, mediaDir)
	if err != nil {
		return result, fmt.Errorf("メディアの書き込みに失敗しました: %w", err)
	}
	result.MediaPaths = savedPaths

	// 3. ダイジェストMarkdownの構築と保存
	relativePaths := make([]string, 0, len(savedPaths))
	for _, pathStr := range savedPaths {
		relativePaths = append(relativePaths, path.Join(defaultMediaDir, filepath.Base(pathStr)))
	}
	content := p.buildMarkdown(story, relativePaths)

	markdownPath, err := ResolveOutputPath(opts.OutputDir, defaultDigestName)
	if err != nil {
		return result, err
	}
	if err := p.writer.Write(ctx, markdownPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = markdownPath

	// 4. HTML変換と保存
	if p.htmlRunner != nil {
		slog.InfoContext(ctx, "ダイジェストをHTMLへ変換します", "title", story.Title)
		htmlBuffer, err := p.htmlRunner.Run(ctx, story.Title, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}

		htmlPath := strings.TrimSuffix(markdownPath, filepath.Ext(markdownPath)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	return result, nil
}

// saveMedia はアセット集合をラベル順に書き出し、保存先パスを返します。
func (p *StoryPublisher) saveMedia(ctx context.Context, media map[string]*domain.AssetRef, baseDir string) ([]string, error) {
	labels := make([]string, 0, len(media))
	for label := range media {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var paths []string
	for _, label := range labels {
		asset := media[label]
		if asset == nil || len(asset.Data) == 0 {
			continue
		}

		fullPath, err := ResolveOutputPath(baseDir, label+asset.FileExt())
		if err != nil {
			return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}
		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(asset.Data), asset.MimeType); err != nil {
			return nil, fmt.Errorf("メディアの書き込みに失敗しました %s: %w", fullPath, err)
		}
		paths = append(paths, fullPath)
	}
	return paths, nil
}

// buildMarkdown はストーリー全体を人が確認できるダイジェストに整形します。
func (p *StoryPublisher) buildMarkdown(story *domain.StoryResult, mediaPaths []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", story.Title))

	if len(story.Hashtags) > 0 {
		sb.WriteString(strings.Join(story.Hashtags, " "))
		sb.WriteString("\n\n")
	}

	for _, scene := range story.Scenes {
		if scene.IsVerification() {
			sb.WriteString(fmt.Sprintf("## %s\n\n", verificationHeader))
		} else {
			sb.WriteString(fmt.Sprintf("## Scene %d\n\n", scene.Number))
		}
		if scene.Tone != "" && !scene.IsVerification() {
			sb.WriteString(fmt.Sprintf("- tone: %s\n", scene.Tone))
		}
		sb.WriteString(fmt.Sprintf("- narration: %s\n", scene.Narration))

		if visual := scene.StructuredPrompt1.Text(); visual != "" {
			sb.WriteString(fmt.Sprintf("- visual: %s\n", visual))
		}
		sb.WriteString("\n")
	}

	if len(mediaPaths) > 0 {
		sb.WriteString("## Media\n\n")
		for _, mediaPath := range mediaPaths {
			sb.WriteString(fmt.Sprintf("![%s](%s)\n", filepath.Base(mediaPath), mediaPath))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
