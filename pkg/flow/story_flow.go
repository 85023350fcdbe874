package flow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-story-kit/pkg/domain"
	"github.com/shouni/go-story-kit/pkg/parser"
	"github.com/shouni/go-story-kit/pkg/prompts"
)

// StoryFlow は、単発の脚本生成フローを実行する構造体です。
// プロンプト構築から応答の検証までを1回の主呼び出しとして扱い、
// 実行中の多重投入は Tracker が抑止します。
type StoryFlow struct {
	model   ScriptModel
	builder *prompts.StoryPromptBuilder
	tracker *Tracker
}

// NewStoryFlow は新しい StoryFlow インスタンスを生成します。
func NewStoryFlow(model ScriptModel, tracker *Tracker) *StoryFlow {
	return &StoryFlow{
		model:   model,
		builder: prompts.NewStoryPromptBuilder(),
		tracker: tracker,
	}
}

// Run はストーリー生成を実行し、検証済みの結果を返すのだ。
// 要求は先に正規化され、応答は N+1 契約を満たさない限り受理しないのだ。
func (f *StoryFlow) Run(ctx context.Context, req domain.StoryRequest) (*domain.StoryResult, error) {
	req.Clamp()

	if err := f.tracker.Begin(); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "ストーリー生成を開始します",
		"title", req.Title, "scenes", req.NumScenes, "style", req.VisualStyle)

	call := f.builder.Build(req)

	raw, err := f.model.Generate(ctx, call)
	if err != nil {
		f.tracker.Fail()
		return nil, fmt.Errorf("脚本モデルの呼び出しに失敗しました: %w", err)
	}

	result := &domain.StoryResult{}
	if err := parser.DecodeInto(raw, result); err != nil {
		f.tracker.Fail()
		return nil, err
	}

	if err := result.Validate(req.NumScenes); err != nil {
		f.tracker.Fail()
		return nil, err
	}

	f.tracker.Complete()
	slog.InfoContext(ctx, "ストーリー生成が完了したのだ", "title", result.Title, "scenes", len(result.Scenes))
	return result, nil
}
