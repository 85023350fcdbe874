package prompts

import "fmt"

// 画像生成呼び出しで共通に使う定数群です。
const (
	// VisualPromptPrefix は全ての可視化呼び出しに前置する品質指示です。
	VisualPromptPrefix = "High quality cinematic photo, strictly follow visual aesthetic"

	// NegativeVisualPrompt は描画から排除したい要素の列挙です。
	NegativeVisualPrompt = "text, alphabet, letters, words, signatures, watermark, username, low quality, distorted, bad anatomy"
)

// BuildVisualPrompt は、シーン由来のプロンプトへ品質指示を前置した最終文面を返します。
func BuildVisualPrompt(prompt string) string {
	return fmt.Sprintf("%s: %s", VisualPromptPrefix, prompt)
}
