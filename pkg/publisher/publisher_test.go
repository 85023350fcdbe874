package publisher

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/shouni/go-story-kit/pkg/domain"
)

type fakeWriter struct {
	files map[string]string
	mimes map[string]string
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{files: map[string]string{}, mimes: map[string]string{}}
}

func (f *fakeWriter) Write(_ context.Context, path string, r io.Reader, mimeType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.files[path] = string(data)
	f.mimes[path] = mimeType
	return nil
}

func testStory() *domain.StoryResult {
	return &domain.StoryResult{
		Title:     "Why is the sky blue?",
		NumScenes: 1,
		Hashtags:  []string{"#science", "#sky"},
		Scenes: []domain.Scene{
			{Number: 1, Narration: "Light scatters.", Tone: "CURIOUS"},
			{Number: 2, Narration: "detik.com", Tone: domain.ToneSourceVerification},
		},
	}
}

func TestStoryPublisher_Publish(t *testing.T) {
	media := map[string]*domain.AssetRef{
		"scene-1":      {Label: "scene-1", Data: []byte("png"), MimeType: "image/png"},
		"cover-tiktok": {Label: "cover-tiktok", Data: []byte("png"), MimeType: "image/png"},
		"broken":       {Label: "broken", MimeType: "image/png"},
	}

	writer := newFakeWriter()
	p := NewStoryPublisher(writer, nil)

	result, err := p.Publish(context.Background(), testStory(), media, Options{OutputDir: "out"})
	if err != nil {
		t.Fatalf("Publish に失敗したのだ: %v", err)
	}

	t.Run("ストーリーJSONは再読込できる形で保存されるのだ", func(t *testing.T) {
		raw, found := writer.files[result.StoryJSONPath]
		if !found {
			t.Fatalf("story.json が書かれていないのだ: %v", result.StoryJSONPath)
		}
		var decoded domain.StoryResult
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			t.Fatalf("保存されたJSONが壊れているのだ: %v", err)
		}
		if decoded.Title != "Why is the sky blue?" || len(decoded.Scenes) != 2 {
			t.Errorf("往復後の内容が違うのだ: %+v", decoded)
		}
		if writer.mimes[result.StoryJSONPath] != "application/json" {
			t.Errorf("MIMEタイプが違うのだ: %s", writer.mimes[result.StoryJSONPath])
		}
	})

	t.Run("空データのメディアは飛ばされるのだ", func(t *testing.T) {
		if len(result.MediaPaths) != 2 {
			t.Fatalf("メディア数が違うのだ: %v", result.MediaPaths)
		}
		for _, p := range result.MediaPaths {
			if strings.Contains(p, "broken") {
				t.Errorf("空データが保存されてしまったのだ: %s", p)
			}
		}
	})

	t.Run("ダイジェストに検証シーンは Sources として載るのだ", func(t *testing.T) {
		content := writer.files[result.MarkdownPath]
		if !strings.Contains(content, "# Why is the sky blue?") {
			t.Error("タイトル見出しが無いのだ")
		}
		if !strings.Contains(content, "## Sources") {
			t.Error("検証シーンの見出しが無いのだ")
		}
		if !strings.Contains(content, "#science #sky") {
			t.Error("ハッシュタグが無いのだ")
		}
		if !strings.Contains(content, "media/scene-1.png") {
			t.Error("メディアへの相対リンクが無いのだ")
		}
	})

	t.Run("HTMLランナーなしでは変換されないのだ", func(t *testing.T) {
		if result.HTMLPath != "" {
			t.Errorf("HTMLパスが入ってしまっているのだ: %s", result.HTMLPath)
		}
	})
}

func TestResolveOutputPath(t *testing.T) {
	t.Run("GCS URIはスキームを保ったまま結合されるのだ", func(t *testing.T) {
		got, err := ResolveOutputPath("gs://bucket/stories", "story.json")
		if err != nil {
			t.Fatal(err)
		}
		if got != "gs://bucket/stories/story.json" {
			t.Errorf("期待と違うのだ: %s", got)
		}
	})

	t.Run("ローカルパスはそのまま結合されるのだ", func(t *testing.T) {
		got, err := ResolveOutputPath("out", "story.json")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(got, "story.json") {
			t.Errorf("期待と違うのだ: %s", got)
		}
	})
}
