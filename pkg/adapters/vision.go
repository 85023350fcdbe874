package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"

	"github.com/shouni/go-story-kit/pkg/prompts"
)

// VisionAdapter は、添付画像付きのマルチモーダル呼び出しを担う構造体です。
// 添付ファイルはリーダー経由で読むため、ローカルパスとGCS URIの双方を扱えます。
type VisionAdapter struct {
	client    *genai.Client
	reader    remoteio.InputReader
	modelName string
}

// NewVisionAdapter は新しい VisionAdapter インスタンスを生成します。
func NewVisionAdapter(client *genai.Client, reader remoteio.InputReader, modelName string) *VisionAdapter {
	return &VisionAdapter{
		client:    client,
		reader:    reader,
		modelName: modelName,
	}
}

// Interpret は、システム指示と添付画像を組み立ててモデルに送り、
// JSONモードで得た応答テキストを返すのだ。
func (a *VisionAdapter) Interpret(ctx context.Context, call prompts.ProviderCall) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(call.UserPrompt)}

	for _, path := range call.AttachmentPaths {
		data, err := a.readAttachment(ctx, path)
		if err != nil {
			return "", fmt.Errorf("添付画像の読み込みに失敗しました (%s): %w", path, err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, http.DetectContentType(data)))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(call.SystemText(), genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.modelName,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("マルチモーダル生成に失敗したのだ: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (a *VisionAdapter) readAttachment(ctx context.Context, path string) ([]byte, error) {
	rc, err := a.reader.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
