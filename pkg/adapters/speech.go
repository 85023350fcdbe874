package adapters

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// SpeechAdapter は、Gemini TTS を音声合成モデルとして適合させる構造体です。
// 返すのはコンテナなしの生PCMで、WAVへの詰め替えは呼び出し側の責務です。
type SpeechAdapter struct {
	client    *genai.Client
	modelName string
	voiceName string
}

// NewSpeechAdapter は新しい SpeechAdapter インスタンスを生成します。
func NewSpeechAdapter(client *genai.Client, modelName, voiceName string) *SpeechAdapter {
	return &SpeechAdapter{
		client:    client,
		modelName: modelName,
		voiceName: voiceName,
	}
}

// Synthesize はテキストをPCM音声データへ合成するのだ。
func (a *SpeechAdapter) Synthesize(ctx context.Context, text string) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: a.voiceName,
				},
			},
		},
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.modelName, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("音声合成に失敗したのだ: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, ErrEmptyPayload
}
