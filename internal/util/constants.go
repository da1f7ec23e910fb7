package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// Unanswered-question policies for submissions. "skip" creates no answer
// row for questions the student left blank; "record" persists a zero-point
// placeholder so analytics can tell blank from unseen.
const (
	UnansweredSkip   = "skip"
	UnansweredRecord = "record"
)
