package donau

import "strings"

// StateClass is the executor-side interpretation of a remote state token.
type StateClass int

const (
	// StatePending covers every state that is neither terminal success nor
	// terminal failure, including all queued/running states and tokens the
	// vocabulary does not know.
	StatePending StateClass = iota

	// StateSuccess means the remote job completed normally.
	StateSuccess

	// StateFailed means the remote job terminated abnormally.
	StateFailed
)

// Terminal state vocabularies, matched case-insensitively. "0" appears when
// djob reports a bare exit code instead of a symbolic state.
var (
	successStates = map[string]struct{}{
		"FINISHED":  {},
		"SUCCEEDED": {},
		"DONE":      {},
		"0":         {},
	}

	failureStates = map[string]struct{}{
		"FAILED":     {},
		"ABORTED":    {},
		"TIMEOUT":    {},
		"NODE_FAIL":  {},
		"TERMINATED": {},
		"EXIT":       {},
	}
)

// ClassifyState maps a raw scheduler state token to its class.
func ClassifyState(state string) StateClass {
	s := strings.ToUpper(strings.TrimSpace(state))
	if _, ok := successStates[s]; ok {
		return StateSuccess
	}
	if _, ok := failureStates[s]; ok {
		return StateFailed
	}
	return StatePending
}
