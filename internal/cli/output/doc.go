// Package output formats command results for the terminal.
//
// Three formats are supported: an aligned text table (the default),
// JSON, and YAML. Formatters accept the value shapes the command
// layer produces: strings, slices, maps, and small result structs.
package output
