package async

import (
	"context"
	"fmt"
	"time"

	"github.com/dealradar/dealradar/pkg/utils/errutil"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// TaskKey is the goerr value key carrying the task name
const TaskKey = "task"

// Dispatch runs handler in a new goroutine detached from the cancellation of
// ctx, so a background job outlives the HTTP request that triggered it. The
// logger and Sentry hub of ctx are carried over. Errors and panics are logged
// and reported through errutil. The returned channel is closed when handler
// finishes.
func Dispatch(ctx context.Context, task string, handler func(ctx context.Context) error) <-chan struct{} {
	logger := logging.From(ctx).With("task", task)
	bgCtx := logging.With(context.WithoutCancel(ctx), logger)
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		bgCtx = sentry.SetHubOnContext(bgCtx, hub.Clone())
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				err := goerr.New(fmt.Sprintf("panic in async task: %v", r), goerr.V(TaskKey, task))
				_ = errutil.Handle(bgCtx, err, "async task panicked")
			}
		}()

		started := time.Now()
		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, goerr.Wrap(err, "async task failed", goerr.V(TaskKey, task)), "async task failed")
			return
		}
		logger.Debug("async task completed", "duration", time.Since(started))
	}()

	return done
}
