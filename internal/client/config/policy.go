package config

import "fmt"

// Policy selects how a session is re-established at startup.
type Policy string

const (
	// PolicyRestore trusts a stored token without contacting the server.
	PolicyRestore Policy = "restore"
	// PolicyAutoLogin replays a full login from saved credentials and falls
	// back to restore when none are saved.
	PolicyAutoLogin Policy = "autologin"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyRestore, "":
		return PolicyRestore, nil
	case PolicyAutoLogin:
		return PolicyAutoLogin, nil
	}
	return "", fmt.Errorf("unknown startup policy %q (want %q or %q)", s, PolicyRestore, PolicyAutoLogin)
}
