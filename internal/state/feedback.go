package state

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Feedback is a single-slot transient banner: the latest message wins and an
// old one never resurfaces after a newer one replaced it.
type Feedback struct {
	message  string
	severity Severity
	shownAt  time.Time
	ttl      time.Duration
	seq      int
}

func NewFeedback(ttl time.Duration) *Feedback {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &Feedback{ttl: ttl}
}

// Show replaces any current message and restarts the dismiss clock.
// It returns the sequence number the auto-dismiss timer must present back;
// a timer armed for an older message is ignored.
func (f *Feedback) Show(severity Severity, message string, now time.Time) int {
	f.message = message
	f.severity = severity
	f.shownAt = now
	f.seq++
	return f.seq
}

func (f *Feedback) Success(message string, now time.Time) int {
	return f.Show(SeveritySuccess, message, now)
}

func (f *Feedback) Error(message string, now time.Time) int {
	return f.Show(SeverityError, message, now)
}

// Expire dismisses the message only when seq still identifies it.
func (f *Feedback) Expire(seq int) {
	if seq == f.seq {
		f.message = ""
	}
}

func (f *Feedback) Dismiss() {
	f.message = ""
}

func (f *Feedback) TTL() time.Duration { return f.ttl }

func (f *Feedback) Current() (string, Severity, bool) {
	if f.message == "" {
		return "", "", false
	}
	return f.message, f.severity, true
}
