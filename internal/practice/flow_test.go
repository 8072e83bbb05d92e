package practice

import (
	"context"
	"errors"
	"io"
	"math"
	"sauticare_web/internal/model"
	"sauticare_web/internal/util"
	"strings"
	"testing"
)

// fakeBackend 可编程的远程后端替身
type fakeBackend struct {
	lesson *model.Lesson

	scores     []float64 // 依次返回的评分
	submitIdx  int
	submitErr  error
	endErr     error
	updateErr  error
	createErr  error

	endCalls    int
	updateCalls int
	updatedPct  float64
}

func (b *fakeBackend) LessonDetail(ctx context.Context, lessonID string) (*model.Lesson, error) {
	cp := *b.lesson
	cp.Phrases = append([]model.Phrase(nil), b.lesson.Phrases...)
	return &cp, nil
}

func (b *fakeBackend) StartLesson(ctx context.Context, lessonID string) (*model.LessonProgress, error) {
	return &model.LessonProgress{LessonID: lessonID, Status: model.StatusInProgress}, nil
}

func (b *fakeBackend) CreatePracticeSession(ctx context.Context, lessonID string) (*model.PracticeSession, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	return &model.PracticeSession{ID: "sess-1", LessonID: lessonID}, nil
}

func (b *fakeBackend) SubmitPhraseAttempt(ctx context.Context, sessionID, phraseID, filename string, audio io.Reader) (*model.AttemptResult, error) {
	if b.submitErr != nil {
		return nil, b.submitErr
	}
	score := b.scores[b.submitIdx]
	b.submitIdx++
	return &model.AttemptResult{PronunciationScore: score}, nil
}

func (b *fakeBackend) EndPracticeSession(ctx context.Context, sessionID string) (*model.SessionSummary, error) {
	b.endCalls++
	if b.endErr != nil {
		return nil, b.endErr
	}
	return &model.SessionSummary{ID: sessionID, TotalAttempts: b.submitIdx}, nil
}

func (b *fakeBackend) UpdateLessonProgress(ctx context.Context, lessonID string, pct float64) (*model.LessonProgress, error) {
	b.updateCalls++
	if b.updateErr != nil {
		return nil, b.updateErr
	}
	b.updatedPct = pct
	return &model.LessonProgress{LessonID: lessonID, CompletionPercentage: pct}, nil
}

func threePhraseLesson() *model.Lesson {
	return &model.Lesson{
		ID: "lesson-1",
		Phrases: []model.Phrase{
			{ID: "p-b", PhraseText: "wash your hands", SequenceOrder: 2},
			{ID: "p-a", PhraseText: "drink clean water", SequenceOrder: 1},
			{ID: "p-c", PhraseText: "eat fruits daily", SequenceOrder: 3},
		},
	}
}

func mustLoadAndStart(t *testing.T, f *Flow) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.LoadLesson(ctx, "lesson-1"); err != nil {
		t.Fatalf("LoadLesson: %v", err)
	}
	if _, err := f.StartSession(ctx); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
}

func submit(t *testing.T, f *Flow) (*model.AttemptResult, error) {
	t.Helper()
	if err := f.BeginRecording(); err != nil {
		t.Fatalf("BeginRecording: %v", err)
	}
	return f.SubmitRecording(context.Background(), "attempt.webm", strings.NewReader("audio"))
}

func TestFlowFullSession(t *testing.T) {
	api := &fakeBackend{lesson: threePhraseLesson(), scores: []float64{80, 60, 95}}
	f := NewFlow(api)
	ctx := context.Background()

	lesson, err := f.LoadLesson(ctx, "lesson-1")
	if err != nil {
		t.Fatalf("LoadLesson: %v", err)
	}
	// 短语必须按 sequence_order 排好
	if lesson.Phrases[0].ID != "p-a" || lesson.Phrases[2].ID != "p-c" {
		t.Fatalf("phrases not sorted by sequence_order: %+v", lesson.Phrases)
	}

	if _, err := f.StartSession(ctx); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if got := f.State(); got != StateSessionActive {
		t.Fatalf("state = %s, want %s", got, StateSessionActive)
	}

	// 80 通过，60 不通过，95 通过
	for i := 0; i < 3; i++ {
		if _, err := submit(t, f); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if got := f.State(); got != StateResultShown {
			t.Fatalf("after submit %d state = %s", i, got)
		}
		if err := f.Next(ctx); err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
	}

	if got := f.State(); got != StateFinished {
		t.Fatalf("final state = %s, want %s", got, StateFinished)
	}

	snap := f.Snapshot()
	wantCompleted := []int{0, 2}
	if len(snap.CompletedIndices) != 2 || snap.CompletedIndices[0] != 0 || snap.CompletedIndices[1] != 2 {
		t.Fatalf("completed = %v, want %v", snap.CompletedIndices, wantCompleted)
	}

	// 2/3：存储完整精度，展示取整
	if math.Abs(f.CompletionPercentage()-200.0/3.0) > 1e-9 {
		t.Fatalf("completion = %v, want 66.66...", f.CompletionPercentage())
	}
	if snap.DisplayPct != 67 {
		t.Fatalf("display pct = %d, want 67", snap.DisplayPct)
	}
	if math.Abs(api.updatedPct-200.0/3.0) > 1e-9 {
		t.Fatalf("reported pct = %v, want full precision", api.updatedPct)
	}
	if api.endCalls != 1 {
		t.Fatalf("end calls = %d, want 1", api.endCalls)
	}
}

func TestFlowStartSessionResetsState(t *testing.T) {
	api := &fakeBackend{lesson: threePhraseLesson(), scores: []float64{90, 90, 90, 50}}
	f := NewFlow(api)
	mustLoadAndStart(t, f)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := submit(t, f); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if err := f.Next(ctx); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if got := f.State(); got != StateFinished {
		t.Fatalf("state = %s, want finished", got)
	}

	// 从 finished 重开：下标归零、完成集清空
	if _, err := f.StartSession(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	snap := f.Snapshot()
	if snap.PhraseIndex != 0 || len(snap.CompletedIndices) != 0 || snap.LastResult != nil {
		t.Fatalf("restart did not reset: %+v", snap)
	}

	// 重开后第一条不通过：完成集只含本会话的结果
	if _, err := submit(t, f); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := len(f.Snapshot().CompletedIndices); got != 0 {
		t.Fatalf("completed carried over from previous session: %d", got)
	}
}

func TestFlowCompletedSetNeverShrinks(t *testing.T) {
	api := &fakeBackend{lesson: threePhraseLesson(), scores: []float64{85, 40}}
	f := NewFlow(api)
	mustLoadAndStart(t, f)

	if _, err := submit(t, f); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	// 同一条短语重录，低分不把它移出完成集
	result, err := submit(t, f)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if result.Passed() {
		t.Fatal("score 40 should not pass")
	}
	snap := f.Snapshot()
	if len(snap.CompletedIndices) != 1 || snap.CompletedIndices[0] != 0 {
		t.Fatalf("completed = %v, want [0]", snap.CompletedIndices)
	}
}

func TestFlowPreviousAtFirstPhrase(t *testing.T) {
	api := &fakeBackend{lesson: threePhraseLesson()}
	f := NewFlow(api)
	mustLoadAndStart(t, f)

	if err := f.Previous(); !errors.Is(err, util.ErrIllegalTransition) {
		t.Fatalf("Previous at index 0: err = %v, want ErrIllegalTransition", err)
	}
	if got := f.Snapshot().PhraseIndex; got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
}

func TestFlowFailRecordingRestoresPriorState(t *testing.T) {
	api := &fakeBackend{lesson: threePhraseLesson(), scores: []float64{75}}
	f := NewFlow(api)
	mustLoadAndStart(t, f)

	// session_active → recording → 失败 → session_active
	if err := f.BeginRecording(); err != nil {
		t.Fatalf("BeginRecording: %v", err)
	}
	if err := f.FailRecording(); err != nil {
		t.Fatalf("FailRecording: %v", err)
	}
	if got := f.State(); got != StateSessionActive {
		t.Fatalf("state = %s, want %s", got, StateSessionActive)
	}

	// result_shown → recording → 失败 → result_shown？
	// 结果在进入录音时已清除，回退后状态保持但结果不恢复
	if _, err := submit(t, f); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.BeginRecording(); err != nil {
		t.Fatalf("BeginRecording: %v", err)
	}
	if err := f.FailRecording(); err != nil {
		t.Fatalf("FailRecording: %v", err)
	}
	if got := f.State(); got != StateResultShown {
		t.Fatalf("state = %s, want %s", got, StateResultShown)
	}
}

func TestFlowSubmitFailureLeavesRetryableState(t *testing.T) {
	api := &fakeBackend{lesson: threePhraseLesson(), scores: []float64{88}}
	f := NewFlow(api)
	mustLoadAndStart(t, f)

	api.submitErr = errors.New("network down")
	if _, err := submit(t, f); err == nil {
		t.Fatal("expected submit error")
	}
	if got := f.State(); got != StateSessionActive {
		t.Fatalf("state after failed submit = %s, want %s", got, StateSessionActive)
	}
	if got := len(f.Snapshot().CompletedIndices); got != 0 {
		t.Fatalf("completed modified on failure: %d", got)
	}

	// 重试成功
	api.submitErr = nil
	if _, err := submit(t, f); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := f.State(); got != StateResultShown {
		t.Fatalf("state = %s, want %s", got, StateResultShown)
	}
}

func TestFlowSubmitOutsideRecording(t *testing.T) {
	api := &fakeBackend{lesson: threePhraseLesson()}
	f := NewFlow(api)
	mustLoadAndStart(t, f)

	_, err := f.SubmitRecording(context.Background(), "a.webm", strings.NewReader("x"))
	if !errors.Is(err, util.ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition", err)
	}
}

func TestFlowEndSessionCalledOnce(t *testing.T) {
	api := &fakeBackend{lesson: threePhraseLesson(), scores: []float64{90, 90, 90}}
	f := NewFlow(api)
	mustLoadAndStart(t, f)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := submit(t, f); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if err := f.Next(ctx); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if _, err := submit(t, f); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// 结束成功但进度上报失败：停回 result_shown
	api.updateErr = errors.New("progress endpoint down")
	if err := f.Next(ctx); err == nil {
		t.Fatal("expected Next error")
	}
	if got := f.State(); got != StateResultShown {
		t.Fatalf("state = %s, want %s", got, StateResultShown)
	}

	// 重试 Next 不能第二次调用 end
	api.updateErr = nil
	if err := f.Next(ctx); err != nil {
		t.Fatalf("retry Next: %v", err)
	}
	if got := f.State(); got != StateFinished {
		t.Fatalf("state = %s, want %s", got, StateFinished)
	}
	if api.endCalls != 1 {
		t.Fatalf("end calls = %d, want exactly 1", api.endCalls)
	}
	if api.updateCalls != 2 {
		t.Fatalf("update calls = %d, want 2", api.updateCalls)
	}
}

func TestFlowEmptyLessonRejected(t *testing.T) {
	api := &fakeBackend{lesson: &model.Lesson{ID: "empty"}}
	f := NewFlow(api)

	_, err := f.LoadLesson(context.Background(), "empty")
	if !errors.Is(err, util.ErrLessonNoPhrases) {
		t.Fatalf("err = %v, want ErrLessonNoPhrases", err)
	}
	if got := f.State(); got != StateNotStarted {
		t.Fatalf("state = %s, want %s", got, StateNotStarted)
	}
}
