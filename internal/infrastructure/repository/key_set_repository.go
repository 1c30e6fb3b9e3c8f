package repository

import (
	"fmt"
	"sync"

	"ikedadada/go-josekey/internal/domain/repository"
	vo "ikedadada/go-josekey/internal/domain/value_object"
	"ikedadada/go-josekey/internal/infrastructure/util"
)

type keySetRepositoryImpl struct {
	mu   sync.RWMutex
	keys []*vo.RSAPublicKey
	byID map[string]*vo.RSAPublicKey
}

// NewKeySetRepository creates an empty in-memory key set.
func NewKeySetRepository() repository.KeySetRepository {
	return &keySetRepositoryImpl{byID: make(map[string]*vo.RSAPublicKey)}
}

// NewKeySetRepositoryFromJWKS creates a key set pre-loaded from a JWK Set
// document. Every entry must be an RSA key with a kid.
func NewKeySetRepositoryFromJWKS(b []byte) (repository.KeySetRepository, error) {
	set, err := vo.JwkSetFromBytes(b)
	if err != nil {
		return nil, err
	}
	r := &keySetRepositoryImpl{byID: make(map[string]*vo.RSAPublicKey, set.Len())}
	for i, jwk := range set.Keys() {
		pub, err := vo.RSAPublicKeyFromJWK(jwk)
		if err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}
		if err := r.Save(pub); err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}
	}
	return r, nil
}

// Save adds key. Saving the same key material under an existing kid is a
// no-op; a different key under that kid is ErrDuplicate.
func (r *keySetRepositoryImpl) Save(key *vo.RSAPublicKey) error {
	if err := util.ValidateRequired(key.KeyID(), "kid"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byID[key.KeyID()]; ok {
		if existing.Equal(key) {
			return nil
		}
		return fmt.Errorf("kid %q: %w", key.KeyID(), repository.ErrDuplicate)
	}
	r.byID[key.KeyID()] = key
	r.keys = append(r.keys, key)
	return nil
}

func (r *keySetRepositoryImpl) FindByKeyID(kid string) (*vo.RSAPublicKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.byID[kid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return key, nil
}

func (r *keySetRepositoryImpl) All() ([]*vo.RSAPublicKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*vo.RSAPublicKey(nil), r.keys...), nil
}
