package confloader

import "errors"

// ErrReadBytesNotSupported is returned from ReadBytes; koanf calls
// Read instead for map-backed providers.
var ErrReadBytesNotSupported = errors.New("confloader: map provider has no byte form")

// mapProvider satisfies koanf's provider interface for an in-memory
// map, letting flag values layer like any other source.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) { return nil, ErrReadBytesNotSupported }

func (m mapProvider) Read() (map[string]any, error) { return m, nil }
