package rain

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Runner triggers the distribution job on a fixed interval, for
// deployments without an external scheduler hitting the rain endpoint.
type Runner struct {
	job      *Job
	pool     decimal.Decimal
	interval time.Duration
}

func NewRunner(job *Job, pool decimal.Decimal, interval time.Duration) *Runner {
	return &Runner{job: job, pool: pool, interval: interval}
}

// Run blocks until ctx is canceled. An interval of zero disables the runner.
func (r *Runner) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := r.job.DistributePool(ctx, r.pool)
			if err != nil {
				slog.Error("scheduled rain failed", "error", err)

				continue
			}

			slog.Info("scheduled rain complete",
				"recipients", report.Recipients,
				"perUser", report.PerUser.StringFixed(2),
				"failures", len(report.Failures),
			)
		}
	}
}
