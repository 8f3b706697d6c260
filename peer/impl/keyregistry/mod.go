package keyregistry

import (
	"sync"

	"go.dedis.ch/sigvss/peer/impl/signature"
	"golang.org/x/xerrors"
)

// ErrAlreadyPublished is returned when an index already has a key.
var ErrAlreadyPublished = xerrors.New("key already published")

// KeyRegistry maps a party index to its public key. Index 0 is the dealer,
// index i the receiver i. Entries are written once and read concurrently.
type KeyRegistry interface {
	// Publish stores the key of index. It fails if the index already has one.
	Publish(index int, pk signature.PublicKey) error

	// Get returns nil if the index has no key
	Get(index int) signature.PublicKey

	Len() int
}

// New returns an empty registry.
func New() KeyRegistry {
	return &keyRegistry{
		keys: make(map[int]signature.PublicKey),
	}
}

type keyRegistry struct {
	sync.RWMutex
	keys map[int]signature.PublicKey
}

// Implements KeyRegistry
func (r *keyRegistry) Publish(index int, pk signature.PublicKey) error {
	if pk == nil {
		return xerrors.Errorf("nil key for index %d", index)
	}

	r.Lock()
	defer r.Unlock()

	_, found := r.keys[index]
	if found {
		return xerrors.Errorf("index %d: %w", index, ErrAlreadyPublished)
	}

	r.keys[index] = pk
	return nil
}

// Implements KeyRegistry
func (r *keyRegistry) Get(index int) signature.PublicKey {
	r.RLock()
	defer r.RUnlock()
	return r.keys[index]
}

// Implements KeyRegistry
func (r *keyRegistry) Len() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.keys)
}
