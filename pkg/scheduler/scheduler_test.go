package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswatch/pkg/domain"
	"newswatch/pkg/scheduler/mocks"
)

func TestScheduler_immediateRunOnStart(t *testing.T) {
	runner := &mocks.RunnerMock{
		RunFunc: func(ctx context.Context) (domain.RunStats, error) { return domain.RunStats{}, nil },
	}

	s := New(runner, time.Hour)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return len(runner.RunCalls()) == 1 },
		time.Second, 10*time.Millisecond, "first pass should fire without waiting for the ticker")
}

func TestScheduler_periodicRuns(t *testing.T) {
	runner := &mocks.RunnerMock{
		RunFunc: func(ctx context.Context) (domain.RunStats, error) { return domain.RunStats{}, nil },
	}

	s := New(runner, 20*time.Millisecond)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return len(runner.RunCalls()) >= 3 },
		time.Second, 10*time.Millisecond)
}

func TestScheduler_stopWaitsForInflightPass(t *testing.T) {
	var finished atomic.Bool
	runner := &mocks.RunnerMock{
		RunFunc: func(ctx context.Context) (domain.RunStats, error) {
			time.Sleep(50 * time.Millisecond)
			finished.Store(true)
			return domain.RunStats{}, nil
		},
	}

	s := New(runner, time.Hour)
	s.Start(context.Background())
	time.Sleep(10 * time.Millisecond) // let the first pass begin
	s.Stop()

	assert.True(t, finished.Load(), "Stop returned before the running pass completed")
}

func TestScheduler_runnerErrorKeepsTicking(t *testing.T) {
	runner := &mocks.RunnerMock{
		RunFunc: func(ctx context.Context) (domain.RunStats, error) {
			return domain.RunStats{}, errors.New("pass failed")
		},
	}

	s := New(runner, 20*time.Millisecond)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return len(runner.RunCalls()) >= 2 },
		time.Second, 10*time.Millisecond, "a failed pass should not stop the schedule")
}

func TestScheduler_defaultInterval(t *testing.T) {
	s := New(&mocks.RunnerMock{}, 0)
	assert.Equal(t, time.Hour, s.interval)
}
