package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"golang.org/x/time/rate"

	"github.com/shouni/go-story-kit/pkg/domain"
	"github.com/shouni/go-story-kit/pkg/prompts"
)

type fakeVisionModel struct {
	response string
	err      error
	calls    int
}

func (f *fakeVisionModel) Interpret(_ context.Context, _ prompts.ProviderCall) (string, error) {
	f.calls++
	return f.response, f.err
}

// fakeImageModel は、failLabels に含まれるラベルの生成だけを失敗させるのだ。
// カバー生成では並行に呼ばれるため、記録はロックで守るのだ。
type fakeImageModel struct {
	mu         sync.Mutex
	failLabels map[string]bool
	requests   []ImageRequest
}

func (f *fakeImageModel) Render(_ context.Context, req ImageRequest) (*domain.AssetRef, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	fail := f.failLabels[req.Label]
	f.mu.Unlock()

	if fail {
		return nil, errors.New("render failed")
	}
	return &domain.AssetRef{
		Label:       req.Label,
		Data:        []byte("png-bytes"),
		MimeType:    "image/png",
		AspectRatio: req.AspectRatio,
	}, nil
}

func promoJSON(t *testing.T, labels ...string) string {
	t.Helper()

	result := domain.AffiliateResult{Summary: "s", Caption: "c"}
	for _, label := range labels {
		result.Assets = append(result.Assets, domain.PromoAsset{
			Label:       label,
			ImagePrompt: fmt.Sprintf("image for %s", label),
			VideoPrompt: fmt.Sprintf("video for %s", label),
		})
	}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("テストデータの生成に失敗したのだ: %v", err)
	}
	return string(data)
}

func newTestAffiliateFlow(vision *fakeVisionModel, image *fakeImageModel, notify ProgressFunc) (*AffiliateFlow, *Tracker) {
	tracker := NewTracker(notify)
	return NewAffiliateFlow(vision, image, tracker, rate.NewLimiter(rate.Inf, 1)), tracker
}

func TestAffiliateFlow_Run(t *testing.T) {
	req := domain.AffiliateRequest{
		ProductName:      "tumbler",
		NumScenes:        3,
		ProductImagePath: "assets/product.png",
	}

	t.Run("画像は企画の順に縦型で生成されるのだ", func(t *testing.T) {
		vision := &fakeVisionModel{response: promoJSON(t, "hook", "demo", "cta")}
		image := &fakeImageModel{}
		f, tracker := newTestAffiliateFlow(vision, image, nil)

		outcome, err := f.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("Run に失敗したのだ: %v", err)
		}

		if len(image.requests) != 3 {
			t.Fatalf("画像要求数が違うのだ: %d", len(image.requests))
		}
		for i, want := range []string{"hook", "demo", "cta"} {
			got := image.requests[i]
			if got.Label != want {
				t.Errorf("要求 %d: 期待ラベル %q, 実際 %q", i, want, got.Label)
			}
			if got.AspectRatio != AspectPortrait {
				t.Errorf("縦型を期待したのだ: %q", got.AspectRatio)
			}
			if got.ReferencePath != "assets/product.png" {
				t.Errorf("商品参照が渡っていないのだ: %q", got.ReferencePath)
			}
			if !strings.Contains(got.Prompt, prompts.VisualPromptPrefix) {
				t.Errorf("ビジュアル接頭辞が付いていないのだ: %q", got.Prompt)
			}
		}
		if len(outcome.Media) != 3 {
			t.Errorf("メディア数が違うのだ: %d", len(outcome.Media))
		}
		if got := tracker.Status().Phase; got != PhaseComplete {
			t.Errorf("期待 %v, 実際 %v", PhaseComplete, got)
		}
	})

	t.Run("企画の失敗では従属呼び出しが一切走らないのだ", func(t *testing.T) {
		vision := &fakeVisionModel{err: errors.New("blocked")}
		image := &fakeImageModel{}
		f, tracker := newTestAffiliateFlow(vision, image, nil)

		if _, err := f.Run(context.Background(), req); err == nil {
			t.Fatal("エラーを期待したのだ")
		}
		if len(image.requests) != 0 {
			t.Errorf("従属呼び出しが走ってしまったのだ: %d", len(image.requests))
		}
		if got := tracker.Status().Phase; got != PhaseFailed {
			t.Errorf("期待 %v, 実際 %v", PhaseFailed, got)
		}
	})

	t.Run("1枚の失敗は飛ばして完走するのだ", func(t *testing.T) {
		vision := &fakeVisionModel{response: promoJSON(t, "hook", "demo", "cta")}
		image := &fakeImageModel{failLabels: map[string]bool{"demo": true}}
		f, tracker := newTestAffiliateFlow(vision, image, nil)

		outcome, err := f.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("欠けありでも完了するはずなのだ: %v", err)
		}
		if len(outcome.Media) != 2 {
			t.Errorf("メディア数が違うのだ: %d", len(outcome.Media))
		}
		if _, found := outcome.Media["demo"]; found {
			t.Error("失敗したラベルが混ざっているのだ")
		}
		if got := tracker.Status().Phase; got != PhaseComplete {
			t.Errorf("期待 %v, 実際 %v", PhaseComplete, got)
		}
	})

	t.Run("進捗は単調増加で通知されるのだ", func(t *testing.T) {
		var indexes []int
		notify := func(s Status) {
			if s.Phase == PhaseMediaInFlight {
				indexes = append(indexes, s.Index)
			}
		}
		vision := &fakeVisionModel{response: promoJSON(t, "hook", "demo")}
		f, _ := newTestAffiliateFlow(vision, &fakeImageModel{}, notify)

		if _, err := f.Run(context.Background(), req); err != nil {
			t.Fatal(err)
		}
		want := []int{0, 1, 2}
		if len(indexes) != len(want) {
			t.Fatalf("進捗通知数が違うのだ: %v", indexes)
		}
		for i := range want {
			if indexes[i] != want[i] {
				t.Errorf("進捗列が違うのだ: %v", indexes)
			}
		}
	})

	t.Run("コンテキスト中断は失敗として畳まれるのだ", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		vision := &fakeVisionModel{response: promoJSON(t, "hook")}
		f, tracker := newTestAffiliateFlow(vision, &fakeImageModel{}, nil)

		if _, err := f.Run(ctx, req); err == nil {
			t.Fatal("エラーを期待したのだ")
		}
		if got := tracker.Status().Phase; got != PhaseFailed {
			t.Errorf("期待 %v, 実際 %v", PhaseFailed, got)
		}
	})
}
