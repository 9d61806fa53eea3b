package domain

import (
	"fmt"
	"strings"
)

// Store identifies one of the grocery chains prices are compared across.
// The set is closed; the declaration order below is the tie-break order used
// everywhere prices or totals compare equal.
type Store uint8

const (
	StoreMaxi Store = iota
	StoreMetro
	StoreProvigo
	StoreSuperC
)

// StoreCount is the number of known stores.
const StoreCount = 4

var storeNames = [StoreCount]string{"maxi", "metro", "provigo", "superc"}

var storeDisplayNames = [StoreCount]string{"Maxi", "Metro", "Provigo", "Super C"}

// AllStores returns every store in tie-break order.
func AllStores() []Store {
	return []Store{StoreMaxi, StoreMetro, StoreProvigo, StoreSuperC}
}

// Valid reports whether s is one of the known stores.
func (s Store) Valid() bool {
	return int(s) < StoreCount
}

func (s Store) String() string {
	if !s.Valid() {
		return fmt.Sprintf("store(%d)", uint8(s))
	}
	return storeNames[s]
}

// DisplayName returns the human-facing chain name, e.g. "Super C".
func (s Store) DisplayName() string {
	if !s.Valid() {
		return s.String()
	}
	return storeDisplayNames[s]
}

// ParseStore resolves a store key. Matching ignores case, spaces, hyphens and
// underscores so "Super C", "super-c" and "superc" are the same store.
func ParseStore(name string) (Store, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))

	for i, n := range storeNames {
		if n == key {
			return Store(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStore, name)
}

// MarshalText lets stores act as JSON object keys and values.
func (s Store) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStore, uint8(s))
	}
	return []byte(storeNames[s]), nil
}

func (s *Store) UnmarshalText(text []byte) error {
	parsed, err := ParseStore(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StoreTotal pairs a store with a cart total at that store.
type StoreTotal struct {
	Store Store   `json:"store"`
	Total float64 `json:"total"`
}
