package flow

import (
	"context"

	"github.com/shouni/go-story-kit/pkg/domain"
	"github.com/shouni/go-story-kit/pkg/prompts"
)

// アスペクト比の既定値です。縦型はショート動画、横型はサムネイル向けです。
const (
	AspectPortrait  = "9:16"
	AspectLandscape = "16:9"
)

// ScriptModel は、テキストのみのプロンプトから脚本テキストを生成するモデルです。
// モデル名の解決はアダプタ側の責務です。
type ScriptModel interface {
	Generate(ctx context.Context, call prompts.ProviderCall) (string, error)
}

// VisionModel は、添付画像付きのプロンプトを解釈してテキストを返すモデルです。
type VisionModel interface {
	Interpret(ctx context.Context, call prompts.ProviderCall) (string, error)
}

// ImageRequest は1枚の画像生成に必要な条件の集合です。
type ImageRequest struct {
	Label          string
	Prompt         string
	NegativePrompt string
	AspectRatio    string
	ReferencePath  string
}

// ImageModel は、1件の要求から1枚の画像アセットを生成するモデルです。
type ImageModel interface {
	Render(ctx context.Context, req ImageRequest) (*domain.AssetRef, error)
}

// SpeechModel は、ナレーションテキストからPCM音声データを合成するモデルです。
// 返り値は生のPCMであり、コンテナへの詰め替えは呼び出し側が行います。
type SpeechModel interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
