package reconcile

import (
	"context"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/robfig/cron/v3"
)

// Schedule registers the sweep on c. Each run is bounded by timeout; runs
// that would overlap a slow predecessor are skipped.
func Schedule(c *cron.Cron, spec string, sweeper *Sweeper, timeout time.Duration) (cron.EntryID, error) {
	job := cron.NewChain(
		cron.Recover(cronLogger{}),
		cron.SkipIfStillRunning(cronLogger{}),
	).Then(cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := sweeper.Run(ctx); err != nil {
			logx.Errorf("reconciliation sweep: %v", err)
		}
	}))

	return c.AddJob(spec, job)
}

// cronLogger routes cron's own messages through logx
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logx.With(keysAndValues...).Debug(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logx.With(append(keysAndValues, "error", err)...).Error(msg)
}
