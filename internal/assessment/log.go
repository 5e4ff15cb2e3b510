package assessment

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LogLimit is how many lines a Log keeps.
const LogLimit = 40

const summaryPreview = 100

// Log is the timestamped line log shown under the workout controls.
type Log struct {
	mu    sync.Mutex
	lines []string
	now   func() time.Time
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Add appends one line, dropping the oldest beyond LogLimit.
func (l *Log) Add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	line := fmt.Sprintf("%s | %s", l.now().Format("15:04:05"), msg)
	l.lines = append(l.lines, line)
	if len(l.lines) > LogLimit {
		l.lines = append([]string(nil), l.lines[len(l.lines)-LogLimit:]...)
	}
}

// Lines returns a copy of the log, oldest first.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Run starts one assessment and narrates it into log. Engine failures are
// logged and returned; the caller may simply call Run again.
func Run(ctx context.Context, engine Engine, kind Kind, log *Log) (Summary, error) {
	log.Add(fmt.Sprintf("Starting %s assessment", kind))
	s, err := engine.StartAssessment(ctx, kind)
	if err != nil {
		log.Add(fmt.Sprintf("Failed: %v", err))
		return Summary{}, err
	}
	log.Add(fmt.Sprintf("Finished (didFinish=%t)", s.DidFinish))
	if s.Text != "" {
		text := []rune(s.Text)
		if len(text) > summaryPreview {
			text = append(text[:summaryPreview], '.', '.', '.')
		}
		log.Add(string(text))
	}
	return s, nil
}
