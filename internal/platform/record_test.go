package platform_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/boxpush/internal/game"
	"github.com/plus3/boxpush/internal/platform"
	"github.com/stretchr/testify/assert"
)

type saved struct {
	level   string
	moves   int
	elapsed time.Duration
}

type fakeSaver struct {
	calls []saved
	err   error
}

func (f *fakeSaver) SaveSolve(level string, moves int, elapsed time.Duration) (int64, error) {
	f.calls = append(f.calls, saved{level, moves, elapsed})
	return int64(len(f.calls)), f.err
}

func TestSolveRecorder(t *testing.T) {
	saver := &fakeSaver{}
	recorder := platform.NewSolveRecorder(saver, "corridor", log.New(&bytes.Buffer{}))

	recorder.Observe(game.Status{State: game.InProgress, Moves: 1})
	assert.Empty(t, saver.calls)

	solved := game.Status{State: game.Solved, Moves: 3, SolvedAt: 1.5}
	recorder.Observe(solved)
	recorder.Observe(solved)
	assert.Equal(t, []saved{{"corridor", 3, 1500 * time.Millisecond}}, saver.calls)
	assert.True(t, recorder.Saved())

	recorder.Reset()
	recorder.Observe(game.Status{State: game.Solved, Moves: 5, SolvedAt: 2})
	assert.Len(t, saver.calls, 2)
}

func TestSolveRecorderFailureIsLogged(t *testing.T) {
	logs := &bytes.Buffer{}
	saver := &fakeSaver{err: errors.New("disk full")}
	recorder := platform.NewSolveRecorder(saver, "corridor", log.New(logs))

	recorder.Observe(game.Status{State: game.Solved, Moves: 3})
	assert.Contains(t, logs.String(), "could not record solve")
	assert.Contains(t, logs.String(), "disk full")
}

func TestSolveRecorderWithoutSaver(t *testing.T) {
	recorder := platform.NewSolveRecorder(nil, "corridor", log.New(&bytes.Buffer{}))
	assert.NotPanics(t, func() {
		recorder.Observe(game.Status{State: game.Solved})
	})
	assert.True(t, recorder.Saved())
}
