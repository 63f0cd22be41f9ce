package config

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map
// provider.
var ErrReadBytesNotSupported = errors.New("config: ReadBytes not supported by map provider, use Read() instead")

// mapProvider is a simple koanf provider that loads configuration from a
// map keyed with dot-delimited paths ("service.url"). It backs both the
// built-in defaults and the flag override layer.
type mapProvider map[string]any

// ReadBytes returns an error as map provider doesn't support byte
// serialization. Use Read() instead.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the configuration expanded into the nested form koanf
// merges; dotted keys stored literally would be lost by Unmarshal.
func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}
