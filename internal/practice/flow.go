// Package practice 实现课程练习的状态机：
// not_started → session_active → recording ⇄ processing → result_shown
// → (下一条短语 或 finishing) → finished。
// 识别、评分与持久化全部委托给远程后端，这里只负责状态推进。
package practice

import (
	"context"
	"io"
	"sauticare_web/internal/model"
	"sauticare_web/internal/util"
	"sync"
)

type State string

const (
	StateNotStarted    State = "not_started"
	StateSessionActive State = "session_active"
	StateRecording     State = "recording"
	StateProcessing    State = "processing"
	StateResultShown   State = "result_shown"
	StateFinishing     State = "finishing"
	StateFinished      State = "finished"
)

// Backend 状态机所需的远程操作子集，测试时用假实现替换
type Backend interface {
	LessonDetail(ctx context.Context, lessonID string) (*model.Lesson, error)
	StartLesson(ctx context.Context, lessonID string) (*model.LessonProgress, error)
	CreatePracticeSession(ctx context.Context, lessonID string) (*model.PracticeSession, error)
	SubmitPhraseAttempt(ctx context.Context, sessionID, phraseID, filename string, audio io.Reader) (*model.AttemptResult, error)
	EndPracticeSession(ctx context.Context, sessionID string) (*model.SessionSummary, error)
	UpdateLessonProgress(ctx context.Context, lessonID string, completionPercentage float64) (*model.LessonProgress, error)
}

// Flow 单个学习者的练习流程。所有转换串行化：
// processing 期间不可能再发起提交。
// 任何网络失败都把状态机留在可重试的位置，完成集不被破坏。
type Flow struct {
	mu  sync.Mutex
	api Backend

	state     State
	prevState State // recording 失败时回退的位置

	lesson    *model.Lesson
	sessionID string

	phraseIndex int
	completed   map[int]bool
	lastResult  *model.AttemptResult

	ended         bool // 会话终结调用只发一次
	summary       *model.SessionSummary
	completionPct float64
}

func NewFlow(api Backend) *Flow {
	return &Flow{
		api:       api,
		state:     StateNotStarted,
		completed: make(map[int]bool),
	}
}

// LoadLesson 拉取课程详情并激活进度记录。短语按 sequence_order 升序，
// 这是展示顺序的唯一来源。
func (f *Flow) LoadLesson(ctx context.Context, lessonID string) (*model.Lesson, error) {
	f.mu.Lock()
	if f.state != StateNotStarted && f.state != StateFinished {
		f.mu.Unlock()
		return nil, util.ErrIllegalTransition
	}
	f.mu.Unlock()

	lesson, err := f.api.LessonDetail(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if len(lesson.Phrases) == 0 {
		return nil, util.ErrLessonNoPhrases
	}
	lesson.SortPhrases()

	if _, err := f.api.StartLesson(ctx, lessonID); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.lesson = lesson
	f.state = StateNotStarted
	f.sessionID = ""
	f.ended = false
	f.summary = nil
	f.completionPct = 0
	f.mu.Unlock()

	return lesson, nil
}

// StartSession 创建练习会话。无论上一个会话留下什么，
// phraseIndex 归零、完成集清空。
func (f *Flow) StartSession(ctx context.Context) (*model.PracticeSession, error) {
	f.mu.Lock()
	if f.lesson == nil || (f.state != StateNotStarted && f.state != StateFinished) {
		f.mu.Unlock()
		return nil, util.ErrIllegalTransition
	}
	lessonID := f.lesson.ID
	f.mu.Unlock()

	session, err := f.api.CreatePracticeSession(ctx, lessonID)
	if err != nil {
		// 创建失败：停在原状态
		return nil, err
	}

	f.mu.Lock()
	f.sessionID = session.ID
	f.state = StateSessionActive
	f.phraseIndex = 0
	f.completed = make(map[int]bool)
	f.lastResult = nil
	f.ended = false
	f.summary = nil
	f.completionPct = 0
	f.mu.Unlock()

	return session, nil
}

// BeginRecording 进入录音状态并清掉上一次的结果展示
func (f *Flow) BeginRecording() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSessionActive && f.state != StateResultShown {
		return util.ErrIllegalTransition
	}

	f.prevState = f.state
	f.state = StateRecording
	f.lastResult = nil
	return nil
}

// FailRecording 录音设备获取失败（如麦克风权限被拒）：
// 回到进入录音前的状态，无任何副作用。
func (f *Flow) FailRecording() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateRecording {
		return util.ErrIllegalTransition
	}

	f.state = f.prevState
	return nil
}

// SubmitRecording 停止录音并把音频送去评分。
// 分数 >= PassScore 时当前短语下标并入完成集（幂等，从不缩小）；
// 无论得分高低都转到 result_shown。提交失败回到 session_active，
// 完成集不变，由调用方决定是否重试。
func (f *Flow) SubmitRecording(ctx context.Context, filename string, audio io.Reader) (*model.AttemptResult, error) {
	f.mu.Lock()
	if f.state != StateRecording {
		f.mu.Unlock()
		return nil, util.ErrIllegalTransition
	}
	f.state = StateProcessing
	sessionID := f.sessionID
	phrase := f.lesson.Phrases[f.phraseIndex]
	index := f.phraseIndex
	f.mu.Unlock()

	result, err := f.api.SubmitPhraseAttempt(ctx, sessionID, phrase.ID, filename, audio)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = StateSessionActive
		return nil, err
	}

	if result.Passed() {
		f.completed[index] = true
	}
	f.lastResult = result
	f.state = StateResultShown
	return result, nil
}

// Next 从结果页前进：非末条短语回到 session_active 并清掉结果；
// 末条短语触发 finishing（结束会话并上报完成百分比）。
func (f *Flow) Next(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateResultShown {
		f.mu.Unlock()
		return util.ErrIllegalTransition
	}

	if f.phraseIndex < len(f.lesson.Phrases)-1 {
		f.phraseIndex++
		f.lastResult = nil
		f.state = StateSessionActive
		f.mu.Unlock()
		return nil
	}

	// 末条短语：进入收尾
	f.state = StateFinishing
	sessionID := f.sessionID
	lessonID := f.lesson.ID
	pct := float64(len(f.completed)) / float64(len(f.lesson.Phrases)) * 100
	alreadyEnded := f.ended
	f.mu.Unlock()

	if !alreadyEnded {
		summary, err := f.api.EndPracticeSession(ctx, sessionID)
		if err != nil {
			f.mu.Lock()
			f.state = StateResultShown
			f.mu.Unlock()
			return err
		}
		f.mu.Lock()
		f.ended = true
		f.summary = summary
		f.mu.Unlock()
	}

	if _, err := f.api.UpdateLessonProgress(ctx, lessonID, pct); err != nil {
		// 会话已结束，重试 Next 不会再触发第二次 end 调用
		f.mu.Lock()
		f.state = StateResultShown
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	f.completionPct = pct
	f.state = StateFinished
	f.mu.Unlock()
	return nil
}

// Previous 仅在 phraseIndex > 0 时有效；清掉结果展示，
// 不触碰完成集，也不产生任何服务端调用。
func (f *Flow) Previous() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSessionActive && f.state != StateResultShown {
		return util.ErrIllegalTransition
	}
	if f.phraseIndex == 0 {
		return util.ErrIllegalTransition
	}

	f.phraseIndex--
	f.lastResult = nil
	f.state = StateSessionActive
	return nil
}
