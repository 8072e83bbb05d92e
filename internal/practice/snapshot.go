package practice

import (
	"sauticare_web/internal/model"
	"sort"
)

// Snapshot 练习流程的一次性只读视图，供界面渲染。
// display_* 字段做了取整，原始分数保留完整精度。
type Snapshot struct {
	State            State                `json:"state"`
	Lesson           *model.Lesson        `json:"lesson,omitempty"`
	SessionID        string               `json:"session_id,omitempty"`
	PhraseIndex      int                  `json:"phrase_index"`
	PhraseCount      int                  `json:"phrase_count"`
	CurrentPhrase    *model.Phrase        `json:"current_phrase,omitempty"`
	CompletedIndices []int                `json:"completed_indices"`
	LastResult       *model.AttemptResult `json:"last_result,omitempty"`
	DisplayScore     *int                 `json:"display_score,omitempty"`
	Summary          *model.SessionSummary `json:"summary,omitempty"`
	CompletionPct    float64              `json:"completion_percentage"`
	DisplayPct       int                  `json:"display_percentage"`
}

// Snapshot 返回当前状态的拷贝
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		State:         f.state,
		Lesson:        f.lesson,
		SessionID:     f.sessionID,
		PhraseIndex:   f.phraseIndex,
		LastResult:    f.lastResult,
		Summary:       f.summary,
		CompletionPct: f.completionPct,
		DisplayPct:    model.DisplayScore(f.completionPct),
	}

	if f.lesson != nil {
		snap.PhraseCount = len(f.lesson.Phrases)
		if f.phraseIndex < len(f.lesson.Phrases) {
			phrase := f.lesson.Phrases[f.phraseIndex]
			snap.CurrentPhrase = &phrase
		}
	}

	snap.CompletedIndices = make([]int, 0, len(f.completed))
	for idx := range f.completed {
		snap.CompletedIndices = append(snap.CompletedIndices, idx)
	}
	sort.Ints(snap.CompletedIndices)

	if f.lastResult != nil {
		score := model.DisplayScore(f.lastResult.PronunciationScore)
		snap.DisplayScore = &score
	}

	return snap
}

// State 当前状态
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CompletionPercentage 会话收尾时计算出的完成百分比（完整精度）
func (f *Flow) CompletionPercentage() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completionPct
}
