package adapters

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"

	"github.com/shouni/go-story-kit/pkg/prompts"
)

// ScriptAdapter は、Geminiクライアントを脚本生成モデルとして適合させる構造体です。
// モデル名はここで固定され、フロー側はモデルの存在を知りません。
type ScriptAdapter struct {
	aiClient  gemini.GenerativeModel
	modelName string
}

// NewScriptAdapter は新しい ScriptAdapter インスタンスを生成します。
func NewScriptAdapter(aiClient gemini.GenerativeModel, modelName string) *ScriptAdapter {
	return &ScriptAdapter{
		aiClient:  aiClient,
		modelName: modelName,
	}
}

// Generate は合成済みプロンプトをモデルへ送り、応答テキストを返すのだ。
func (a *ScriptAdapter) Generate(ctx context.Context, call prompts.ProviderCall) (string, error) {
	resp, err := a.aiClient.GenerateContent(ctx, call.Compose(), a.modelName)
	if err != nil {
		return "", fmt.Errorf("脚本の生成に失敗したのだ: %w", err)
	}
	if resp.Text == "" {
		return "", ErrEmptyResponse
	}
	return resp.Text, nil
}
