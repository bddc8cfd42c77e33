package donau

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// QueryStatus resolves the remote state of the given external ids and
// returns an id→state snapshot.
//
// The query runs in two phases:
//  1. djob over the full id set ("active" jobs)
//  2. djob -D over the ids phase 1 did not resolve ("historical" jobs)
//
// An id therefore appears in at most one phase's result by construction.
//
// Failure policy is merge-partial: a failed phase is recorded but the other
// phase still runs with its full remaining id set, and whatever was parsed
// is returned alongside the first recorded *QueryError. Ids missing from
// the snapshot are treated as still pending by the reconciler, so partial
// results never lose a job. Malformed output lines (fewer than two fields)
// and ids outside the query set are ignored.
func (c *Client) QueryStatus(ctx context.Context, ids []string) (map[string]string, error) {
	statuses := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return statuses, nil
	}

	queried := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		queried[id] = struct{}{}
	}

	firstErr := c.queryPhase(ctx, false, ids, queried, statuses)

	remaining := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := statuses[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	sort.Strings(remaining)

	if len(remaining) > 0 {
		if err := c.queryPhase(ctx, true, remaining, queried, statuses); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return statuses, firstErr
}

// queryPhase runs one djob invocation and merges parsed lines into out.
func (c *Client) queryPhase(ctx context.Context, historical bool, target []string, queried map[string]struct{}, out map[string]string) error {
	args := []string{"-o", "jobid state", "--no-header"}
	if historical {
		args = append(args, "-D")
	}
	args = append(args, target...)

	if err := c.wait(ctx); err != nil {
		return err
	}

	raw, err := c.runner.Run(ctx, c.cfg.QueryCmd, args...)
	if err != nil {
		qerr := &QueryError{
			Command: commandLine(c.cfg.QueryCmd, args),
			Output:  strings.TrimSpace(string(raw)),
			Err:     err,
		}
		c.log.Debug("djob query failed",
			zap.Bool("historical", historical),
			zap.Int("ids", len(target)),
			zap.Error(qerr))
		return qerr
	}

	parseStatusLines(string(raw), queried, out)
	return nil
}

// parseStatusLines merges "jobid state ..." lines into out, skipping
// malformed lines and ids that were never queried.
func parseStatusLines(raw string, queried map[string]struct{}, out map[string]string) {
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		id, state := fields[0], fields[1]
		if _, ok := queried[id]; !ok {
			continue
		}
		out[id] = state
	}
}
