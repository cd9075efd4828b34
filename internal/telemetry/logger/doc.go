// Package logger provides structured logging for RedisGate.
//
// It wraps log/slog to provide structured JSON or text logging with
// automatic redaction of credential material (passwords, AUTH
// arguments). Core conversion packages take no logger dependency; the
// client and CLI layers accept one explicitly, and process-wide
// initialization is owned by the command entry point.
package logger
