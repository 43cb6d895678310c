package deployer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
	"github.com/cowlnet/deployer/sdk/mocks"
	"github.com/cowlnet/deployer/types"
)

const testHash = types.DeployHash("5b1e0d3b2f3a5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5")

var (
	pending   = types.ExecutionStatus{Outcome: types.DeployPending}
	succeeded = types.ExecutionStatus{Outcome: types.DeploySucceeded, BlockHash: "bb01", Cost: "1000"}
)

// mockSleep advances the mock clock instead of waiting and records each wait.
func mockSleep(mockClock *clock.Mock, waits *[]time.Duration) SleepFunc {
	return func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		mockClock.Add(d)

		return nil
	}
}

func newTestPoller(t *testing.T, querier *mocks.StatusQuerier, opts ...PollerOption) (*Poller, *[]time.Duration) {
	t.Helper()

	mockClock := clock.NewMock()
	waits := &[]time.Duration{}

	opts = append([]PollerOption{
		WithClock(mockClock),
		WithSleep(mockSleep(mockClock, waits)),
		WithLogger(zaptest.NewLogger(t).Sugar()),
	}, opts...)

	p, err := NewPoller(querier, opts...)
	require.NoError(t, err)

	return p, waits
}

func TestNewPoller(t *testing.T) {
	t.Parallel()

	p, err := NewPoller(mocks.NewStatusQuerier(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxAttempts, p.maxAttempts)
	assert.Equal(t, DefaultPollInterval, p.interval)

	_, err = NewPoller(nil)
	require.Error(t, err)

	_, err = NewPoller(mocks.NewStatusQuerier(t), WithMaxAttempts(0))
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewPoller(mocks.NewStatusQuerier(t), WithInterval(-time.Second))
	require.ErrorAs(t, err, &cfgErr)
}

func TestPoller_Poll_SucceedsOnThirdAttempt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	querier := mocks.NewStatusQuerier(t)
	querier.EXPECT().DeployStatus(ctx, testHash).Return(pending, nil).Twice()
	querier.EXPECT().DeployStatus(ctx, testHash).Return(succeeded, nil).Once()

	p, waits := newTestPoller(t, querier, WithMaxAttempts(10), WithInterval(2*time.Second))

	conf, err := p.Poll(ctx, testHash)
	require.NoError(t, err)
	assert.Equal(t, types.DeploySucceeded, conf.Outcome)
	assert.Equal(t, 3, conf.Attempts)
	assert.Equal(t, 4*time.Second, conf.Elapsed)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, *waits)
	assert.Equal(t, "bb01", conf.Status.BlockHash)
}

func TestPoller_Poll_SucceedsAtAttemptK(t *testing.T) {
	t.Parallel()

	for k := 1; k <= 5; k++ {
		ctx := context.Background()
		querier := mocks.NewStatusQuerier(t)
		if k > 1 {
			querier.EXPECT().DeployStatus(ctx, testHash).Return(pending, nil).Times(k - 1)
		}
		querier.EXPECT().DeployStatus(ctx, testHash).Return(succeeded, nil).Once()

		p, waits := newTestPoller(t, querier, WithMaxAttempts(5), WithInterval(time.Second))

		conf, err := p.Poll(ctx, testHash)
		require.NoError(t, err)
		assert.Equal(t, types.DeploySucceeded, conf.Outcome)
		assert.Equal(t, k, conf.Attempts)
		assert.Len(t, *waits, k-1)
	}
}

func TestPoller_Poll_TimesOutAfterExactlyMaxAttempts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	querier := mocks.NewStatusQuerier(t)
	querier.EXPECT().DeployStatus(ctx, testHash).Return(pending, nil).Times(4)

	p, waits := newTestPoller(t, querier, WithMaxAttempts(4), WithInterval(3*time.Second))

	conf, err := p.Poll(ctx, testHash)
	assert.Equal(t, types.DeployTimedOut, conf.Outcome)
	assert.Equal(t, 4, conf.Attempts)
	assert.Equal(t, 9*time.Second, conf.Elapsed)
	assert.Len(t, *waits, 3)

	var timeoutErr *ConfirmationTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, testHash, timeoutErr.Hash)
	assert.Equal(t, 4, timeoutErr.Attempts)
}

func TestPoller_Poll_Failed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	querier := mocks.NewStatusQuerier(t)
	querier.EXPECT().DeployStatus(ctx, testHash).
		Return(types.ExecutionStatus{Outcome: types.DeployFailed, ErrorMessage: "User error: 65534"}, nil).Once()

	p, waits := newTestPoller(t, querier)

	conf, err := p.Poll(ctx, testHash)
	assert.Equal(t, types.DeployFailed, conf.Outcome)
	assert.Equal(t, 1, conf.Attempts)
	assert.Empty(t, *waits)

	var failureErr *ConfirmationFailureError
	require.ErrorAs(t, err, &failureErr)
	assert.Equal(t, "User error: 65534", failureErr.ErrorMessage)

	var timeoutErr *ConfirmationTimeoutError
	assert.False(t, errors.As(err, &timeoutErr))
}

func TestPoller_Poll_QueryErrorsArePending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	querier := mocks.NewStatusQuerier(t)
	querier.EXPECT().DeployStatus(ctx, testHash).Return(pending, sdkerrors.ErrMalformedResponse).Once()
	querier.EXPECT().DeployStatus(ctx, testHash).Return(pending, errors.New("connection refused")).Once()
	querier.EXPECT().DeployStatus(ctx, testHash).Return(succeeded, nil).Once()

	p, _ := newTestPoller(t, querier)

	conf, err := p.Poll(ctx, testHash)
	require.NoError(t, err)
	assert.Equal(t, types.DeploySucceeded, conf.Outcome)
	assert.Equal(t, 3, conf.Attempts)
}

func TestPoller_Poll_MalformedUntilTimeoutIsNeverSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	querier := mocks.NewStatusQuerier(t)
	querier.EXPECT().DeployStatus(ctx, testHash).
		Return(types.ExecutionStatus{Outcome: types.DeployPending}, sdkerrors.ErrMalformedResponse).Times(3)

	p, _ := newTestPoller(t, querier, WithMaxAttempts(3))

	conf, err := p.Poll(ctx, testHash)
	assert.Equal(t, types.DeployTimedOut, conf.Outcome)

	var timeoutErr *ConfirmationTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
}

func TestPoller_Poll_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	querier := mocks.NewStatusQuerier(t)
	querier.EXPECT().DeployStatus(ctx, testHash).Return(pending, nil).Once()

	p, err := NewPoller(querier,
		WithLogger(zaptest.NewLogger(t).Sugar()),
		WithSleep(func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		}),
	)
	require.NoError(t, err)

	conf, err := p.Poll(ctx, testHash)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, types.DeployPending, conf.Outcome)
	assert.Equal(t, 1, conf.Attempts)
}

func TestPoller_Poll_RealClock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	querier := mocks.NewStatusQuerier(t)
	querier.EXPECT().DeployStatus(ctx, testHash).Return(pending, nil).Once()
	querier.EXPECT().DeployStatus(ctx, testHash).Return(succeeded, nil).Once()

	p, err := NewPoller(querier, WithInterval(time.Millisecond), WithLogger(zaptest.NewLogger(t).Sugar()))
	require.NoError(t, err)

	conf, err := p.Poll(ctx, testHash)
	require.NoError(t, err)
	assert.Equal(t, 2, conf.Attempts)
	assert.GreaterOrEqual(t, conf.Elapsed, time.Millisecond)
}

func TestPoller_Poll_CountersArePerCall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	querier := mocks.NewStatusQuerier(t)
	querier.EXPECT().DeployStatus(ctx, testHash).Return(pending, nil).Times(4)

	p, _ := newTestPoller(t, querier, WithMaxAttempts(2))

	for range 2 {
		conf, err := p.Poll(ctx, testHash)
		require.Error(t, err)
		assert.Equal(t, 2, conf.Attempts)
	}
}
