// Package confloader loads client configuration from layered sources.
//
// It builds on koanf and merges, in increasing priority:
//
//  1. Default values
//  2. Configuration file (YAML)
//  3. Environment variables (REDISGATE_*)
//  4. Command-line flags (loaded as a map by the CLI layer)
//
// A file watcher built on fsnotify can trigger reloads when the
// configuration file changes on disk.
package confloader
