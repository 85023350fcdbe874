package prompts

import "encoding/json"

// FieldType はスキーマ記述子で使う型名です。
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeObject FieldType = "object"
	TypeArray  FieldType = "array"
)

// SchemaField は、プロバイダに要求する出力構造を列挙するスキーマ記述子です。
// すべての期待フィールドとその型をここで宣言し、機械的にパース可能な
// 構造化データだけが返るようにモデルを拘束します。
type SchemaField struct {
	Type       FieldType              `json:"type"`
	Properties map[string]SchemaField `json:"properties,omitempty"`
	Items      *SchemaField           `json:"items,omitempty"`
	Required   []string               `json:"required,omitempty"`
}

// ProviderCall は、1回のプロバイダ呼び出しに必要な要素の完全な組です。
// 指示文、厳密な出力スキーマ、添付参照画像のパスを保持します。
type ProviderCall struct {
	SystemInstruction string
	UserPrompt        string
	Schema            SchemaField
	AttachmentPaths   []string

	// ExpectedItems は主結果のアイテム列に期待する総数です（検証レコードを含む）。
	ExpectedItems int
}

// SchemaJSON はスキーマ記述子を整形済みJSONとして描画します。
func (c ProviderCall) SchemaJSON() string {
	data, err := json.MarshalIndent(c.Schema, "", "  ")
	if err != nil {
		// スキーマは静的に組み立てた構造体なので、ここに来たら実装バグです。
		return "{}"
	}
	return string(data)
}

// SystemText はシステム指示とスキーマ宣言を結合した文面を返します。
// システム指示を個別に渡せるクライアント向けの形式です。
func (c ProviderCall) SystemText() string {
	return c.SystemInstruction + "\n\n### OUTPUT SCHEMA (STRICT JSON) ###\nRespond with a single JSON object conforming exactly to this schema:\n" + c.SchemaJSON()
}

// Compose は、単一プロンプトしか受け取れないクライアント向けに
// システム指示・スキーマ・ユーザープロンプトを1本のテキストへ合成します。
func (c ProviderCall) Compose() string {
	return c.SystemText() + "\n\n### REQUEST ###\n" + c.UserPrompt
}
