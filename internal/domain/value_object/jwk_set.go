package value_object

import (
	"encoding/json"
	"fmt"

	"ikedadada/go-josekey/internal/infrastructure/util"
)

// JwkSet is a JWK Set document (RFC 7517 section 5).
type JwkSet struct {
	keys []*Jwk
}

func NewJwkSet(keys ...*Jwk) *JwkSet {
	return &JwkSet{keys: keys}
}

// JwkSetFromBytes parses {"keys":[...]}. Every entry must be a valid JWK.
func JwkSetFromBytes(b []byte) (*JwkSet, error) {
	var doc struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJwk, err)
	}
	if doc.Keys == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJwk, util.ValidationError{Field: "keys", Message: "is required"})
	}
	set := &JwkSet{keys: make([]*Jwk, 0, len(doc.Keys))}
	for i, raw := range doc.Keys {
		jwk, err := JwkFromBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}
		set.keys = append(set.keys, jwk)
	}
	return set, nil
}

func (s *JwkSet) Keys() []*Jwk {
	return append([]*Jwk(nil), s.keys...)
}

func (s *JwkSet) Len() int { return len(s.keys) }

func (s *JwkSet) Bytes() []byte {
	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return b
}

func (s *JwkSet) MarshalJSON() ([]byte, error) {
	keys := s.keys
	if keys == nil {
		keys = []*Jwk{}
	}
	return json.Marshal(struct {
		Keys []*Jwk `json:"keys"`
	}{keys})
}
