package deployer

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/types"
)

const (
	DefaultMaxAttempts  = 100
	DefaultPollInterval = 2 * time.Second
)

// Confirmation is the result of polling a deploy.
type Confirmation struct {
	Hash     types.DeployHash
	Outcome  types.DeployOutcome
	Attempts int
	Elapsed  time.Duration
	// Status is the last status read from the node, if any query succeeded.
	Status types.ExecutionStatus
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Poller queries a deploy's status until it reaches a terminal outcome or the attempt budget is
// spent.
type Poller struct {
	querier     sdk.StatusQuerier
	maxAttempts int
	interval    time.Duration
	clock       clock.Clock
	sleep       SleepFunc
	logger      sdk.Logger
}

type PollerOption func(*Poller)

func WithMaxAttempts(n int) PollerOption {
	return func(p *Poller) { p.maxAttempts = n }
}

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

// WithClock sets the clock used to measure elapsed time and, unless WithSleep is given, to wait.
func WithClock(c clock.Clock) PollerOption {
	return func(p *Poller) { p.clock = c }
}

func WithSleep(sleep SleepFunc) PollerOption {
	return func(p *Poller) { p.sleep = sleep }
}

// WithLogger sets the logger. By default the logger carried by the Poll context is used.
func WithLogger(logger sdk.Logger) PollerOption {
	return func(p *Poller) { p.logger = logger }
}

func NewPoller(querier sdk.StatusQuerier, opts ...PollerOption) (*Poller, error) {
	p := &Poller{
		querier:     querier,
		maxAttempts: DefaultMaxAttempts,
		interval:    DefaultPollInterval,
		clock:       clock.New(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.querier == nil {
		return nil, errors.New("status querier is required")
	}
	if p.maxAttempts < 1 {
		return nil, NewConfigurationError("", "max attempts must be at least 1", nil)
	}
	if p.interval < 0 {
		return nil, NewConfigurationError("", "poll interval must not be negative", nil)
	}

	return p, nil
}

// Poll queries hash up to MaxAttempts times, waiting Interval between queries only.
//
// Query errors and unreadable responses count as pending. A failed execution returns a
// *ConfirmationFailureError and an exhausted budget a *ConfirmationTimeoutError; in both cases
// the Confirmation is returned as well. Cancelling ctx stops polling with outcome Pending.
func (p *Poller) Poll(ctx context.Context, hash types.DeployHash) (*Confirmation, error) {
	logger := p.logger
	if logger == nil {
		logger = sdk.LoggerFrom(ctx)
	}

	start := p.clock.Now()
	conf := &Confirmation{Hash: hash, Outcome: types.DeployPending}

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := p.wait(ctx, p.interval); err != nil {
				conf.Elapsed = p.clock.Since(start)
				return conf, err
			}
		}
		if err := ctx.Err(); err != nil {
			return conf, err
		}

		conf.Attempts = attempt
		status, err := p.querier.DeployStatus(ctx, hash)
		conf.Elapsed = p.clock.Since(start)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return conf, ctxErr
			}
			logger.Warnf("Status query %d/%d for deploy %s failed: %v", attempt, p.maxAttempts, hash, err)

			continue
		}
		conf.Status = status

		switch status.Outcome {
		case types.DeploySucceeded:
			conf.Outcome = types.DeploySucceeded
			logger.Infof("Deploy %s succeeded in block %s after %d attempts", hash, status.BlockHash, attempt)

			return conf, nil
		case types.DeployFailed:
			conf.Outcome = types.DeployFailed
			logger.Infof("Deploy %s failed: %s", hash, status.ErrorMessage)

			return conf, NewConfirmationFailureError(hash, status.ErrorMessage)
		default:
			logger.Debugf("Deploy %s pending (attempt %d/%d)", hash, attempt, p.maxAttempts)
		}
	}

	conf.Outcome = types.DeployTimedOut

	return conf, NewConfirmationTimeoutError(hash, conf.Attempts, conf.Elapsed)
}

func (p *Poller) wait(ctx context.Context, d time.Duration) error {
	if p.sleep != nil {
		return p.sleep(ctx, d)
	}

	timer := p.clock.Timer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
