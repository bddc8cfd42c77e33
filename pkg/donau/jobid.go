package donau

import "regexp"

// Two textual conventions are recognized in dsub output, in order of
// preference: a decimal id in angle brackets anywhere in the text, then a
// decimal id at the very start (leading whitespace allowed).
var (
	bracketIDPattern = regexp.MustCompile(`<(\d+)>`)
	leadingIDPattern = regexp.MustCompile(`^\s*(\d+)`)
)

// ExtractJobID parses the external job identifier out of raw submission
// output. No match returns a *ParseIDError: at this point the submission is
// already committed to the scheduler, so the caller must surface the error
// rather than retry.
func ExtractJobID(output string) (string, error) {
	if m := bracketIDPattern.FindStringSubmatch(output); m != nil {
		return m[1], nil
	}
	if m := leadingIDPattern.FindStringSubmatch(output); m != nil {
		return m[1], nil
	}
	return "", &ParseIDError{Output: output}
}
