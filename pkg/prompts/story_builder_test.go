package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/shouni/go-story-kit/pkg/domain"
)

func TestStoryPromptBuilder_Build(t *testing.T) {
	builder := NewStoryPromptBuilder()
	req := domain.StoryRequest{
		Title:       "Why is the sky blue?",
		NumScenes:   3,
		VisualStyle: domain.StyleCinematic,
		Language:    domain.LanguageEnglish,
	}

	call := builder.Build(req)

	t.Run("期待アイテム数は N+1 になるのだ", func(t *testing.T) {
		if call.ExpectedItems != 4 {
			t.Errorf("期待 4, 実際 %d", call.ExpectedItems)
		}
	})

	t.Run("指示文に検証トーンとN+1ルールが埋め込まれるのだ", func(t *testing.T) {
		if !strings.Contains(call.SystemInstruction, domain.ToneSourceVerification) {
			t.Error("検証トーンの指定が見当たらないのだ")
		}
		if !strings.Contains(call.SystemInstruction, "Produce exactly 4 scenes in total") {
			t.Error("N+1 の総数指示が見当たらないのだ")
		}
	})

	t.Run("ユーザーパラメータが置換で埋め込まれるのだ", func(t *testing.T) {
		for _, want := range []string{req.Title, string(req.VisualStyle), string(req.Language)} {
			if !strings.Contains(call.Compose(), want) {
				t.Errorf("合成プロンプトに %q が含まれないのだ", want)
			}
		}
	})

	t.Run("スキーマは全フィールドを列挙した有効なJSONなのだ", func(t *testing.T) {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(call.SchemaJSON()), &decoded); err != nil {
			t.Fatalf("スキーマJSONが壊れているのだ: %v", err)
		}

		rendered := call.SchemaJSON()
		for _, field := range []string{"title", "numScenes", "scenes", "tiktokCover", "youtubeCover", "hashtags", "structuredPrompt1", "camera_movement"} {
			if !strings.Contains(rendered, field) {
				t.Errorf("スキーマにフィールド %q が列挙されていないのだ", field)
			}
		}
	})

	t.Run("ビルドは純粋変換で添付を持たないのだ", func(t *testing.T) {
		if len(call.AttachmentPaths) != 0 {
			t.Errorf("ストーリー呼び出しに添付は不要なのだ: %v", call.AttachmentPaths)
		}
	})
}

func TestAffiliatePromptBuilder_Build(t *testing.T) {
	builder := NewAffiliatePromptBuilder()
	req := domain.AffiliateRequest{
		ProductName:      "stainless tumbler",
		Style:            domain.StyleUnboxing,
		NumScenes:        2,
		Instructions:     "focus on the lid design",
		ProductImagePath: "assets/product.png",
		ModelImagePath:   "assets/model.png",
	}

	call := builder.Build(req)

	t.Run("添付画像は商品→モデルの順で積まれるのだ", func(t *testing.T) {
		if len(call.AttachmentPaths) != 2 {
			t.Fatalf("添付数が違うのだ: %v", call.AttachmentPaths)
		}
		if call.AttachmentPaths[0] != "assets/product.png" || call.AttachmentPaths[1] != "assets/model.png" {
			t.Errorf("添付順が違うのだ: %v", call.AttachmentPaths)
		}
	})

	t.Run("商品名と追加指示が埋め込まれるのだ", func(t *testing.T) {
		composed := call.Compose()
		if !strings.Contains(composed, "stainless tumbler") {
			t.Error("商品名が埋め込まれていないのだ")
		}
		if !strings.Contains(composed, "focus on the lid design") {
			t.Error("追加指示が埋め込まれていないのだ")
		}
	})

	t.Run("モデル画像なしなら添付は1件なのだ", func(t *testing.T) {
		solo := req
		solo.ModelImagePath = ""
		call := builder.Build(solo)
		if len(call.AttachmentPaths) != 1 {
			t.Errorf("添付数が違うのだ: %v", call.AttachmentPaths)
		}
	})
}

func TestBuildVisualPrompt(t *testing.T) {
	got := BuildVisualPrompt("a red lighthouse at dawn")
	want := fmt.Sprintf("%s: a red lighthouse at dawn", VisualPromptPrefix)
	if got != want {
		t.Errorf("期待 %q, 実際 %q", want, got)
	}
}
