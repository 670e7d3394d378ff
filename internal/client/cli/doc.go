// Package cli provides the interactive RaisinEat command-line client.
//
// It wires configuration, the SQLite-backed keychain, the session state
// machine, auto-login and the catalog into a REPL. On start the navigation
// gate runs the configured startup policy; afterwards the available
// commands follow the gate screen:
//
//	auth:       login, autologin, forget, help, exit
//	dashboard:  cuisines, restaurants <cuisine> [page], show <id>,
//	            whoami, logout, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
