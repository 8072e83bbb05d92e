package util

import "errors"

var (
	ErrNoToken           = errors.New("no token stored")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrNoActiveSession   = errors.New("no active practice session")
	ErrIllegalTransition = errors.New("action not allowed in current practice state")
	ErrRecordingActive   = errors.New("a recording is already in progress")
	ErrSessionFinished   = errors.New("practice session already finished")
	ErrEmptyRecording    = errors.New("recording contains no audio")
	ErrRecordingTooLong  = errors.New("recording exceeds the maximum allowed duration")
	ErrLessonNoPhrases   = errors.New("lesson has no phrases to practice")
)
