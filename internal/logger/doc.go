// Package logger wraps zap with a global sugared console logger and
// context helpers (ToContext/FromContext/WithName/WithKV).
//
// Services receive a context and log through it, so names and key-value
// pairs attached upstream (the run identifier, the command name) follow
// every message of a packaging run.
package logger
