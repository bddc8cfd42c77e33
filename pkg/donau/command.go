package donau

import (
	"strings"

	"go.uber.org/zap"
)

// SubmitSpec carries everything needed to build one dsub invocation.
type SubmitSpec struct {
	// JobName is the scheduler-visible job name.
	JobName string

	// LogFile is the absolute path job output is redirected to (-oo).
	LogFile string

	// WorkDir is the working directory for the remote job (--cwd).
	WorkDir string

	// Resources, Threads and Priority feed the resource mapper.
	Resources Resources
	Threads   int
	Priority  int

	// Payload is the pre-formatted execution command, appended as the
	// final token.
	Payload string
}

// BuildSubmitArgs assembles the dsub argument list for a job:
//
//	-n <name> -oo <logfile> --cwd <dir> <mapped resources> <payload>
//
// The submission verb itself is supplied by the client config, not here.
func BuildSubmitArgs(spec SubmitSpec, log *zap.Logger) []string {
	args := []string{"-n", spec.JobName, "-oo", spec.LogFile, "--cwd", spec.WorkDir}
	args = append(args, MapResources(spec.Resources, spec.Threads, spec.Priority, log)...)
	args = append(args, spec.Payload)
	return args
}

// commandLine renders an invocation for error messages and logs.
func commandLine(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}
