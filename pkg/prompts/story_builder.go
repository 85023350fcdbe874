package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-story-kit/pkg/domain"
)

// TrustedSources は事実検証の照合先として指示するメディアの一覧です。
var TrustedSources = []string{"detik.com", "cnnindonesia.com", "kompas.com"}

// StoryPromptBuilder は、ストーリー生成要求からプロバイダ呼び出し一式を構築します。
// 純粋な変換であり、副作用もエラー条件も持ちません。
// 数値範囲などの不正入力は上流の Clamp で正規化されている前提です。
type StoryPromptBuilder struct {
	trustedSources []string
}

// NewStoryPromptBuilder は新しい StoryPromptBuilder を生成します。
func NewStoryPromptBuilder() *StoryPromptBuilder {
	return &StoryPromptBuilder{trustedSources: TrustedSources}
}

// Build は要求内容をプロンプトへ埋め込み、厳密スキーマ付きの呼び出しを返すのだ。
// 要求シーン数 N に対して、期待アイテム数は必ず N+1 になるのだ。
// 追加の1件は末尾の検証レコードであり、これは契約上の必須項目なのだよ。
func (b *StoryPromptBuilder) Build(req domain.StoryRequest) ProviderCall {
	expected := req.NumScenes + 1

	var ss strings.Builder
	ss.WriteString("You are a fact-based content analyzer and cinematic storytelling architect.\n")
	ss.WriteString("Your role is to verify, analyze, and compose verifiable fact-based content from trusted media.\n\n")

	ss.WriteString("### VERIFICATION RULES (MANDATORY) ###\n")
	ss.WriteString(fmt.Sprintf("- Validate the facts behind %q before composing any scene.\n", req.Title))
	ss.WriteString(fmt.Sprintf("- Prioritized sources: %s.\n", strings.Join(b.trustedSources, ", ")))
	ss.WriteString("- If a fact cannot be found in trusted sources, state so explicitly. Never fabricate facts.\n\n")

	ss.WriteString("### SCENE COUNT RULE (N+1) ###\n")
	ss.WriteString(fmt.Sprintf("- The user requests %d scenes. Produce exactly %d scenes in total.\n", req.NumScenes, expected))
	ss.WriteString(fmt.Sprintf("- The final scene (scene %d) MUST contain the source verification record:\n", expected))
	ss.WriteString("  media name, article title, verification summary, and validation status.\n")
	ss.WriteString(fmt.Sprintf("- Set the final scene's 'tone' to %q.\n\n", domain.ToneSourceVerification))

	ss.WriteString("### COVER PROMPT RULES ###\n")
	ss.WriteString(fmt.Sprintf("- 'tiktokCover': a detailed cinematic prompt for 9:16, based on the title %q and visual style %q.\n", req.Title, req.VisualStyle))
	ss.WriteString(fmt.Sprintf("- 'youtubeCover': a detailed cinematic prompt for 16:9, based on the title %q and visual style %q.\n\n", req.Title, req.VisualStyle))

	ss.WriteString("### STORYTELLING RULES ###\n")
	ss.WriteString("- Narration per scene: 20-25 words, educational and dense.\n")
	ss.WriteString(fmt.Sprintf("- Every visual prompt must open with a subject styled as %q.\n", req.VisualStyle))

	userPrompt := fmt.Sprintf(
		"Analyze the facts and compose an educational cinematic story for %q as %d scenes plus 1 verification scene. Style: %q. Language: %s.",
		req.Title, req.NumScenes, req.VisualStyle, req.Language,
	)

	return ProviderCall{
		SystemInstruction: ss.String(),
		UserPrompt:        userPrompt,
		Schema:            storySchema(),
		ExpectedItems:     expected,
	}
}

// storySchema はストーリー応答の全フィールドを列挙したスキーマ記述子を返します。
func storySchema() SchemaField {
	structured := structuredPromptSchema()

	sceneSchema := SchemaField{
		Type: TypeObject,
		Properties: map[string]SchemaField{
			"number":            {Type: TypeNumber},
			"narration":         {Type: TypeString},
			"tone":              {Type: TypeString},
			"structuredPrompt1": structured,
			"structuredPrompt2": structured,
		},
		Required: []string{"number", "narration", "tone", "structuredPrompt1", "structuredPrompt2"},
	}

	return SchemaField{
		Type: TypeObject,
		Properties: map[string]SchemaField{
			"title":        {Type: TypeString},
			"numScenes":    {Type: TypeNumber},
			"visualStyle":  {Type: TypeString},
			"language":     {Type: TypeString},
			"scenes":       {Type: TypeArray, Items: &sceneSchema},
			"tiktokCover":  {Type: TypeString},
			"youtubeCover": {Type: TypeString},
			"hashtags":     {Type: TypeArray, Items: &SchemaField{Type: TypeString}},
		},
		Required: []string{"title", "numScenes", "visualStyle", "language", "scenes", "tiktokCover", "youtubeCover", "hashtags"},
	}
}

// structuredPromptSchema は分解済みビジュアル記述のスキーマ記述子を返します。
func structuredPromptSchema() SchemaField {
	return SchemaField{
		Type: TypeObject,
		Properties: map[string]SchemaField{
			"subject":           {Type: TypeString},
			"action":            {Type: TypeString},
			"environment":       {Type: TypeString},
			"camera_movement":   {Type: TypeString},
			"lighting":          {Type: TypeString},
			"visual_style_tags": {Type: TypeString},
		},
		Required: []string{"subject", "action", "environment", "camera_movement", "lighting", "visual_style_tags"},
	}
}
