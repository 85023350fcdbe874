package domain

import (
	"fmt"
	"strings"
)

// シーン数の許容範囲の定義です。範囲外の指定は拒否せず丸め込みます。
const (
	MinScenes = 1
	MaxScenes = 200
)

// ToneSourceVerification は、検証シーン（最終シーン）専用の予約トーンです。
const ToneSourceVerification = "SOURCE_VERIFICATION"

// VisualStyle は生成画像の画風を表す列挙値です。
type VisualStyle string

const (
	StyleSoftClay     VisualStyle = "Soft Clay Pixar 3D"
	StyleCinematic    VisualStyle = "Cinematic Realistic"
	StyleAnime        VisualStyle = "Anime Cel-Shaded"
	StyleRetroComic   VisualStyle = "Retro Comic"
	DefaultStyle                  = StyleSoftClay
)

// Language はナレーションの言語を表す列挙値です。
type Language string

const (
	LanguageIndonesian Language = "Indonesian"
	LanguageEnglish    Language = "English"
	LanguageJapanese   Language = "Japanese"
	DefaultLanguage             = LanguageIndonesian
)

// StoryRequest は、ユーザーが指定するストーリー生成の要求内容です。
// 生成フローに渡された後は変更されない不変の記述として扱います。
type StoryRequest struct {
	Title       string      `json:"title"`
	NumScenes   int         `json:"num_scenes"`
	VisualStyle VisualStyle `json:"visual_style"`
	Language    Language    `json:"language"`
}

// Clamp はシーン数を許容範囲に丸め、未指定の列挙値をデフォルトで埋めるのだ。
// 不正な入力はエラーにせず、常に実行可能な要求へ正規化するのだよ。
func (r *StoryRequest) Clamp() {
	if r.NumScenes < MinScenes {
		r.NumScenes = MinScenes
	}
	if r.NumScenes > MaxScenes {
		r.NumScenes = MaxScenes
	}
	if r.VisualStyle == "" {
		r.VisualStyle = DefaultStyle
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// StructuredPrompt は、画像生成を駆動する分解済みのビジュアル記述です。
type StructuredPrompt struct {
	Subject         string `json:"subject"`
	Action          string `json:"action"`
	Environment     string `json:"environment"`
	CameraMovement  string `json:"camera_movement"`
	Lighting        string `json:"lighting"`
	VisualStyleTags string `json:"visual_style_tags"`
}

// Text は構造化プロンプトを画像生成向けの1本のテキストへ畳み込みます。
// 空のフィールドは出力から省かれます。
func (p StructuredPrompt) Text() string {
	fields := []string{p.Subject, p.Action, p.Environment, p.CameraMovement, p.Lighting, p.VisualStyleTags}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ", ")
}

// Scene は物語の1単位（ナレーション + 2系統の構造化プロンプト）を保持します。
type Scene struct {
	Number            int              `json:"number"`
	Narration         string           `json:"narration"`
	Tone              string           `json:"tone"`
	StructuredPrompt1 StructuredPrompt `json:"structuredPrompt1"`
	StructuredPrompt2 StructuredPrompt `json:"structuredPrompt2"`
}

// IsVerification は、このシーンが検証シーンであるかを返します。
func (s Scene) IsVerification() bool {
	return s.Tone == ToneSourceVerification
}

// Label はメディアアセットのキーとして使う安定識別子を返します。
func (s Scene) Label() string {
	return fmt.Sprintf("scene-%d", s.Number)
}

// StoryResult は AI モデルから返されるストーリー全体の構造です。
type StoryResult struct {
	Title        string      `json:"title"`
	NumScenes    int         `json:"numScenes"`
	VisualStyle  VisualStyle `json:"visualStyle"`
	Language     Language    `json:"language"`
	Scenes       []Scene     `json:"scenes"`
	TikTokCover  string      `json:"tiktokCover"`
	YouTubeCover string      `json:"youtubeCover"`
	Hashtags     []string    `json:"hashtags"`
}

// Validate は、要求シーン数 requested に対して応答が契約どおりかを検査するのだ。
// 契約: シーン列は requested+1 件で、最終シーンだけが検証トーンを持つのだ。
// 違反はスキーマ不一致として回復可能なエラーで返すのだよ。
func (r StoryResult) Validate(requested int) error {
	expected := requested + 1
	if len(r.Scenes) != expected {
		return fmt.Errorf("%w: シーン数が契約と一致しません (期待 %d, 実際 %d)", ErrSchemaMismatch, expected, len(r.Scenes))
	}

	last := r.Scenes[len(r.Scenes)-1]
	if !last.IsVerification() {
		return fmt.Errorf("%w: 最終シーンが検証トーン %q ではありません (実際 %q)", ErrSchemaMismatch, ToneSourceVerification, last.Tone)
	}

	for _, scene := range r.Scenes[:len(r.Scenes)-1] {
		if scene.IsVerification() {
			return fmt.Errorf("%w: 検証シーンは末尾以外に置けません (scene %d)", ErrSchemaMismatch, scene.Number)
		}
	}

	return nil
}

// ContentScenes は検証シーンを除いた本編シーンのみを返します。
func (r StoryResult) ContentScenes() []Scene {
	scenes := make([]Scene, 0, len(r.Scenes))
	for _, s := range r.Scenes {
		if !s.IsVerification() {
			scenes = append(scenes, s)
		}
	}
	return scenes
}

// SceneByNumber は指定番号のシーンを検索します。見つからない場合は nil を返します。
func (r StoryResult) SceneByNumber(number int) *Scene {
	for i := range r.Scenes {
		if r.Scenes[i].Number == number {
			return &r.Scenes[i]
		}
	}
	return nil
}
