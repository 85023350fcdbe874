package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-story-kit/pkg/domain"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// ExtractJSON は、AIが返したテキストから JSON 本体を取り出します。
// Markdown のコードフェンスを優先し、なければ最外殻の波括弧で切り出します。
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	matches := jsonBlockRegex.FindStringSubmatch(raw)
	if len(matches) > 1 {
		return matches[1]
	}

	firstBracket := strings.Index(raw, "{")
	lastBracket := strings.LastIndex(raw, "}")
	if firstBracket != -1 && lastBracket != -1 && lastBracket > firstBracket {
		return raw[firstBracket : lastBracket+1]
	}

	// Fallback: 応答全体が素のJSONである想定
	return raw
}

// DecodeInto は、モデル出力から抽出した JSON を指定の構造体へデコードします。
// パースに失敗した場合は応答の抜粋を添えたスキーマ不一致エラーを返します。
func DecodeInto(raw string, v any) error {
	rawJSON := ExtractJSON(raw)
	if err := json.Unmarshal([]byte(rawJSON), v); err != nil {
		return fmt.Errorf("%w: AIからの応答に含まれるJSONの解析に失敗しました (応答抜粋: %q): %v",
			domain.ErrSchemaMismatch, truncateString(raw, 200), err)
	}
	return nil
}

// StoryParser は、保存済みのストーリーJSONを読み込む構造体です。
// 可視化やナレーションなどの追加生成コマンドが入力として使います。
type StoryParser struct {
	reader remoteio.InputReader
}

// NewStoryParser は新しい StoryParser インスタンスを生成します。
func NewStoryParser(r remoteio.InputReader) *StoryParser {
	return &StoryParser{reader: r}
}

// ParseFromPath は GCS URI やローカルパスからストーリーJSONを読み込みます。
func (p *StoryParser) ParseFromPath(ctx context.Context, path string) (*domain.StoryResult, error) {
	slog.InfoContext(ctx, "ストーリーファイルを読み込んでいます", "path", path)
	rc, err := p.reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("ストーリーファイルのオープンに失敗しました (%s): %w", path, err)
	}
	defer rc.Close()

	result := &domain.StoryResult{}
	if err := json.NewDecoder(rc).Decode(result); err != nil {
		return nil, fmt.Errorf("ストーリーJSONのパースに失敗しました: %w", err)
	}

	return result, nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
