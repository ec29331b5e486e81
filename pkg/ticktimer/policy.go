package ticktimer

import (
	"fmt"
	"strings"
)

// Policy selects how a tick protocol violation is handled.
type Policy int

const (
	// PolicyLog keeps the timer state consistent and logs one warning per
	// violation.
	PolicyLog Policy = iota

	// PolicyIgnore keeps the timer state consistent and says nothing.
	PolicyIgnore

	// PolicyStrict returns the violation to the caller.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyIgnore:
		return "ignore"
	case PolicyLog:
		return "log"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "ignore", "log" or "strict", ignoring case.
// The empty string selects PolicyLog.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "log":
		return PolicyLog, nil
	case "ignore":
		return PolicyIgnore, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyLog, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}
