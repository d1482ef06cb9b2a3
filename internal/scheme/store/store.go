// Package store holds the durable backends for the scheme list. Every backend
// keeps the whole list under a single key, the same way the browser client
// kept it in local storage.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gogotex/schemes/internal/scheme"
)

// DefaultKey is the key the scheme list is stored under.
const DefaultKey = "schemes"

// Store loads and saves the full scheme list.
// Load reports ok=false when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (list []scheme.Scheme, ok bool, err error)
	Save(ctx context.Context, list []scheme.Scheme) error
	Driver() string
}

func encode(list []scheme.Scheme) ([]byte, error) {
	if list == nil {
		list = []scheme.Scheme{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode schemes: %w", err)
	}
	return b, nil
}

func decode(b []byte) ([]scheme.Scheme, error) {
	var list []scheme.Scheme
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("decode schemes: %w", err)
	}
	if list == nil {
		list = []scheme.Scheme{}
	}
	return list, nil
}

func keyOrDefault(key string) string {
	if key == "" {
		return DefaultKey
	}
	return key
}
