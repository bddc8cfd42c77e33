package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLogRoot is the run-relative directory job logs are written under.
const DefaultLogRoot = ".snakemake/donau_logs"

// LogPath computes the absolute per-job log file path:
//
//	<root>/<group_<id> | rule_<name>>/<flattened wildcards | "unique">/<jobid>.log
//
// Wildcards flatten to "key-value" segments joined by "_"; path separators
// inside values are replaced by "-" so one job maps to one directory.
func LogPath(root string, job *JobDescriptor) (string, error) {
	if root == "" {
		root = DefaultLogRoot
	}

	var folder, wildcards string
	if job.Group {
		folder = fmt.Sprintf("group_%s", job.GroupID)
		wildcards = "group"
	} else {
		folder = fmt.Sprintf("rule_%s", job.Name)
		wildcards = flattenWildcards(job.Wildcards)
	}

	return filepath.Abs(filepath.Join(root, folder, wildcards, fmt.Sprintf("%d.log", job.JobID)))
}

// EnsureLogDir creates the log file's containing directory. Creation is
// idempotent: an already-existing directory is not an error.
func EnsureLogDir(logFile string) error {
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	return nil
}

func flattenWildcards(wildcards []Wildcard) string {
	if len(wildcards) == 0 {
		return "unique"
	}
	parts := make([]string, 0, len(wildcards))
	for _, w := range wildcards {
		parts = append(parts, fmt.Sprintf("%s-%s", w.Key, w.Value))
	}
	return strings.ReplaceAll(strings.Join(parts, "_"), "/", "-")
}
