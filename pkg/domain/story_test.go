package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStoryRequest_Clamp(t *testing.T) {
	t.Run("範囲外のシーン数は丸め込まれるのだ", func(t *testing.T) {
		req := StoryRequest{Title: "test", NumScenes: 500}
		req.Clamp()
		if req.NumScenes != MaxScenes {
			t.Errorf("上限に丸められていないのだ: %d", req.NumScenes)
		}

		req = StoryRequest{Title: "test", NumScenes: 0}
		req.Clamp()
		if req.NumScenes != MinScenes {
			t.Errorf("下限に丸められていないのだ: %d", req.NumScenes)
		}
	})

	t.Run("未指定の列挙値はデフォルトで埋まるのだ", func(t *testing.T) {
		req := StoryRequest{Title: "test", NumScenes: 3}
		req.Clamp()
		if req.VisualStyle != DefaultStyle {
			t.Errorf("スタイルのデフォルトが違うのだ: %s", req.VisualStyle)
		}
		if req.Language != DefaultLanguage {
			t.Errorf("言語のデフォルトが違うのだ: %s", req.Language)
		}
	})
}

// verificationScene はテスト用の検証シーンを組み立てるヘルパーです。
func verificationScene(number int) Scene {
	return Scene{Number: number, Narration: "出典の検証結果", Tone: ToneSourceVerification}
}

func contentScenes(n int) []Scene {
	scenes := make([]Scene, 0, n)
	for i := 1; i <= n; i++ {
		scenes = append(scenes, Scene{Number: i, Narration: "本編", Tone: "NEUTRAL"})
	}
	return scenes
}

func TestStoryResult_Validate(t *testing.T) {
	t.Run("N+1件で末尾が検証シーンなら受理するのだ", func(t *testing.T) {
		result := StoryResult{Scenes: append(contentScenes(3), verificationScene(4))}
		if err := result.Validate(3); err != nil {
			t.Fatalf("正しい応答が拒否されたのだ: %v", err)
		}
	})

	t.Run("シーン数が足りない応答はスキーマ不一致なのだ", func(t *testing.T) {
		result := StoryResult{Scenes: contentScenes(3)}
		err := result.Validate(3)
		if !errors.Is(err, ErrSchemaMismatch) {
			t.Fatalf("ErrSchemaMismatch を期待したのだ: %v", err)
		}
	})

	t.Run("検証シーンが末尾にない応答は拒否するのだ", func(t *testing.T) {
		scenes := []Scene{verificationScene(1)}
		scenes = append(scenes, contentScenes(3)...)
		result := StoryResult{Scenes: scenes}
		if err := result.Validate(3); !errors.Is(err, ErrSchemaMismatch) {
			t.Fatalf("ErrSchemaMismatch を期待したのだ: %v", err)
		}
	})

	t.Run("末尾が通常トーンの応答は拒否するのだ", func(t *testing.T) {
		result := StoryResult{Scenes: contentScenes(4)}
		if err := result.Validate(3); !errors.Is(err, ErrSchemaMismatch) {
			t.Fatalf("ErrSchemaMismatch を期待したのだ: %v", err)
		}
	})
}

func TestStoryResult_JSON(t *testing.T) {
	t.Run("AIからのレスポンス形式をシミュレートするのだ", func(t *testing.T) {
		inputJSON := `{
			"title": "なぜ空は青いのか",
			"numScenes": 1,
			"visualStyle": "Soft Clay Pixar 3D",
			"language": "Indonesian",
			"scenes": [
				{
					"number": 1,
					"narration": "太陽光が大気で散乱するから",
					"tone": "EDUCATIONAL",
					"structuredPrompt1": {
						"subject": "blue sky",
						"action": "light scattering",
						"environment": "open field",
						"camera_movement": "slow pan",
						"lighting": "midday sun",
						"visual_style_tags": "cinematic"
					},
					"structuredPrompt2": {
						"subject": "sun rays",
						"action": "refracting",
						"environment": "atmosphere",
						"camera_movement": "tilt up",
						"lighting": "golden",
						"visual_style_tags": "soft clay"
					}
				},
				{
					"number": 2,
					"narration": "出典: 信頼できる報道による検証",
					"tone": "SOURCE_VERIFICATION",
					"structuredPrompt1": {},
					"structuredPrompt2": {}
				}
			],
			"tiktokCover": "vertical cover prompt",
			"youtubeCover": "horizontal cover prompt",
			"hashtags": ["#fakta", "#sains"]
		}`

		var result StoryResult
		if err := json.Unmarshal([]byte(inputJSON), &result); err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}

		if result.Title != "なぜ空は青いのか" {
			t.Errorf("タイトルが違うのだ: %s", result.Title)
		}
		if err := result.Validate(1); err != nil {
			t.Errorf("契約どおりの応答が拒否されたのだ: %v", err)
		}
		if got := result.Scenes[0].StructuredPrompt1.CameraMovement; got != "slow pan" {
			t.Errorf("構造化プロンプトが正しくパースされていないのだ: %s", got)
		}
		if !result.Scenes[1].IsVerification() {
			t.Error("検証シーンの判定が正しくないのだ")
		}
	})
}

func TestStoryResult_Helpers(t *testing.T) {
	result := StoryResult{Scenes: append(contentScenes(2), verificationScene(3))}

	if got := len(result.ContentScenes()); got != 2 {
		t.Errorf("本編シーン数が違うのだ: %d", got)
	}

	scene := result.SceneByNumber(2)
	if scene == nil || scene.Number != 2 {
		t.Errorf("シーン検索が失敗したのだ: %+v", scene)
	}
	if result.SceneByNumber(99) != nil {
		t.Error("存在しない番号で nil 以外が返ったのだ")
	}

	if got := result.Scenes[0].Label(); got != "scene-1" {
		t.Errorf("ラベル形式が違うのだ: %s", got)
	}
}
