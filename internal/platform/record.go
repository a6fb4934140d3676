// Package platform holds pieces shared by the window and terminal hosts.
package platform

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/boxpush/internal/game"
)

// SolveSaver persists a finished level. *storage.Store implements it.
type SolveSaver interface {
	SaveSolve(level string, moves int, elapsed time.Duration) (int64, error)
}

// SolveRecorder saves a level's solve the first time a host sees it solved.
// A nil saver records nothing.
type SolveRecorder struct {
	saver  SolveSaver
	level  string
	logger *log.Logger
	saved  bool
}

func NewSolveRecorder(saver SolveSaver, level string, logger *log.Logger) *SolveRecorder {
	return &SolveRecorder{saver: saver, level: level, logger: logger}
}

// Observe checks status and saves once per solve. Reset arms it again after a restart.
func (r *SolveRecorder) Observe(status game.Status) {
	if r.saved || status.State != game.Solved {
		return
	}
	r.saved = true

	if r.saver == nil || r.level == "" {
		return
	}

	elapsed := time.Duration(status.SolvedAt * float64(time.Second))
	if _, err := r.saver.SaveSolve(r.level, status.Moves, elapsed); err != nil {
		r.logger.Warn("could not record solve", "level", r.level, "err", err)
		return
	}
	r.logger.Info("solve recorded", "level", r.level, "moves", status.Moves, "elapsed", elapsed)
}

// Reset allows the next solve to be recorded.
func (r *SolveRecorder) Reset() {
	r.saved = false
}

// Saved reports whether the current solve was already handled.
func (r *SolveRecorder) Saved() bool {
	return r.saved
}
