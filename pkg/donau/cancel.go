package donau

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Cancel issues one bulk best-effort dkill for the given ids. An empty id
// list performs no external call. Errors are logged and swallowed: this is
// fire-and-forget because cancellation typically happens during teardown,
// where retrying or blocking would delay shutdown.
func (c *Client) Cancel(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}

	args := append([]string{"-y", "--force"}, ids...)

	if err := c.wait(ctx); err != nil {
		c.log.Warn("failed to cancel jobs", zap.Error(err))
		return
	}

	out, err := c.runner.Run(ctx, c.cfg.CancelCmd, args...)
	if err != nil {
		c.log.Warn("failed to cancel jobs",
			zap.Strings("job_ids", ids),
			zap.String("output", strings.TrimSpace(string(out))),
			zap.Error(err))
	}
}
