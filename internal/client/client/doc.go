// Package client wires the client building blocks from configuration.
//
// # Overview
//
// Connect resolves the mode, opens the local session cache in production,
// runs the Session Authenticator and hands back a Client carrying the
// session, the record client and the display time zone. Both surfaces (the
// REPL and the web page) start from Connect and bind a ui.Binder to
// Client.Records.
//
// # Error Handling
//
// Connect returns no Client on failure. A denied or abandoned login matches
// common.ErrLoginAbandoned; a store that presents an unexpected root key
// matches common.ErrRootKeyMismatch; an unreachable store matches
// common.ErrUnavailable.
package client
