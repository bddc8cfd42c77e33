package donau

import (
	"context"
	"fmt"
)

// fakeRunner scripts CLI responses and records every invocation.
type fakeRunner struct {
	calls     []fakeCall
	responses []fakeResponse
}

type fakeCall struct {
	name string
	args []string
}

type fakeResponse struct {
	out string
	err error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, fakeCall{name: name, args: args})
	if len(f.responses) == 0 {
		return nil, fmt.Errorf("unexpected invocation: %s", name)
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return []byte(r.out), r.err
}
