// Package watch re-runs a job on a cron schedule until its context is
// cancelled.
package watch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// parser accepts standard 5-field cron expressions plus descriptors such
// as @hourly and @every 30s.
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Parse validates a schedule expression.
func Parse(spec string) (cron.Schedule, error) {
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return schedule, nil
}

// Runner executes Job at every tick of Schedule. Job failures are logged
// and do not stop the runner.
type Runner struct {
	Schedule cron.Schedule
	Job      func(context.Context) error
	Logger   *log.Logger
}

// Run blocks, sleeping to each scheduled time and invoking the job, until
// the context is cancelled. It returns the context's error.
func (r *Runner) Run(ctx context.Context) error {
	for {
		next := r.Schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := r.Job(ctx); err != nil {
			r.logger().Printf("watch job failed: %v", err)
		}
	}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
