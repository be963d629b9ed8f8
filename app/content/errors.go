package content

import "errors"

// Failure classes. All of them collapse into the section's error state; the
// class is only logged.
var (
	ErrNetwork = errors.New("network failure")
	ErrParse   = errors.New("parse failure")
	ErrEmpty   = errors.New("empty result")
)

func classify(err error) string {
	switch {
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrEmpty):
		return "empty"
	default:
		return "render"
	}
}
