package model

import "sort"

type LessonCategory string

const (
	CategoryNutrition LessonCategory = "nutrition"
	CategoryHygiene   LessonCategory = "hygiene"
)

// Lesson 课程，获取后只读
type Lesson struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        LessonCategory `json:"category"`
	Language        string         `json:"language"`
	DifficultyLevel int            `json:"difficulty_level"`
	Phrases         []Phrase       `json:"phrases,omitempty"`
}

// Phrase 课程中的一个练习短语
type Phrase struct {
	ID                    string `json:"id"`
	PhraseText            string `json:"phrase_text"`
	DifficultyLevel       int    `json:"difficulty_level"`
	SequenceOrder         int    `json:"sequence_order"`
	PhoneticTranscription string `json:"phonetic_transcription,omitempty"`
}

// SortPhrases 按 sequence_order 升序排序，展示顺序的唯一依据
func (l *Lesson) SortPhrases() {
	sort.SliceStable(l.Phrases, func(i, j int) bool {
		return l.Phrases[i].SequenceOrder < l.Phrases[j].SequenceOrder
	})
}

// LessonFilter 课程列表的筛选条件，零值表示不过滤
type LessonFilter struct {
	Category        string
	DifficultyLevel int
	Language        string
}
