package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls    atomic.Int32
	running  atomic.Int32
	overlaps atomic.Int32
	delay    time.Duration
}

func (r *countingRunner) RunCycle(_ context.Context) {
	if r.running.Add(1) > 1 {
		r.overlaps.Add(1)
	}
	time.Sleep(r.delay)
	r.running.Add(-1)
	r.calls.Add(1)
}

func TestScheduler_RunsCyclesRepeatedly(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, &recordingLogger{}, 10*time.Millisecond)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return runner.calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_CyclesDoNotOverlap(t *testing.T) {
	runner := &countingRunner{delay: 30 * time.Millisecond}
	s := NewScheduler(runner, &recordingLogger{}, 5*time.Millisecond)

	require.NoError(t, s.Start())

	assert.Eventually(t, func() bool {
		return runner.calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(0), runner.overlaps.Load())
}

func TestScheduler_StartTwice(t *testing.T) {
	log := &recordingLogger{}
	s := NewScheduler(&countingRunner{}, log, time.Second)

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	s.Stop()

	assert.Equal(t, 1, log.count("warn"))
}

func TestScheduler_InvalidInterval(t *testing.T) {
	s := NewScheduler(&countingRunner{}, &recordingLogger{}, 0)

	err := s.Start()

	assert.ErrorIs(t, err, ErrScheduleJob)
}

func TestScheduler_StopCancelsContext(t *testing.T) {
	s := NewScheduler(&countingRunner{}, &recordingLogger{}, time.Hour)
	require.NoError(t, s.Start())

	s.Stop()

	assert.Error(t, s.ctx.Err())
}
