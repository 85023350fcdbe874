package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-story-kit/pkg/domain"
)

// AffiliatePromptBuilder は、商品プロモーション要求からプロバイダ呼び出しを構築します。
// 参照画像（商品・モデル）はパスのまま添付リストに積み、読み込みは呼び出し側が行います。
type AffiliatePromptBuilder struct{}

// NewAffiliatePromptBuilder は新しい AffiliatePromptBuilder を生成します。
func NewAffiliatePromptBuilder() *AffiliatePromptBuilder {
	return &AffiliatePromptBuilder{}
}

// Build は要求内容をプロンプトへ埋め込み、添付画像付きの呼び出しを返すのだ。
func (b *AffiliatePromptBuilder) Build(req domain.AffiliateRequest) ProviderCall {
	var ss strings.Builder
	ss.WriteString("You are an expert AI video and affiliate marketing director.\n")
	ss.WriteString("Task: produce video prompts with lip-sync and voice promotion features.\n\n")

	ss.WriteString("### CONFIGURATION ###\n")
	ss.WriteString(fmt.Sprintf("- Content style: %s\n", req.Style))
	ss.WriteString(fmt.Sprintf("- Target scene count: %d\n\n", req.NumScenes))

	ss.WriteString("### GOLDEN RULES ###\n")
	ss.WriteString("- VOICE SYNC (MANDATORY): include a specific promotional narration inside each prompt.\n")
	ss.WriteString(fmt.Sprintf("- AFFILIATE PERSUASION: persuasive dialogue inviting viewers to try %s.\n", req.ProductName))
	if req.Instructions != "" {
		ss.WriteString(fmt.Sprintf("- ADDITIONAL INSTRUCTIONS: %s\n", req.Instructions))
	}

	userPrompt := fmt.Sprintf("Produce promotional content for %s in the %q style.", req.ProductName, req.Style)

	attachments := make([]string, 0, 2)
	if req.ProductImagePath != "" {
		attachments = append(attachments, req.ProductImagePath)
	}
	if req.ModelImagePath != "" {
		attachments = append(attachments, req.ModelImagePath)
	}

	return ProviderCall{
		SystemInstruction: ss.String(),
		UserPrompt:        userPrompt,
		Schema:            affiliateSchema(),
		AttachmentPaths:   attachments,
		ExpectedItems:     req.NumScenes,
	}
}

// affiliateSchema はプロモーション応答の全フィールドを列挙したスキーマ記述子を返します。
func affiliateSchema() SchemaField {
	assetSchema := SchemaField{
		Type: TypeObject,
		Properties: map[string]SchemaField{
			"label":       {Type: TypeString},
			"imagePrompt": {Type: TypeString},
			"videoPrompt": {Type: TypeString},
		},
		Required: []string{"label", "imagePrompt", "videoPrompt"},
	}

	return SchemaField{
		Type: TypeObject,
		Properties: map[string]SchemaField{
			"summary": {Type: TypeString},
			"caption": {Type: TypeString},
			"assets":  {Type: TypeArray, Items: &assetSchema},
		},
		Required: []string{"summary", "caption", "assets"},
	}
}
