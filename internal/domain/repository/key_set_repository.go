package repository

import "ikedadada/go-josekey/internal/domain/value_object"

// KeySetRepository stores public keys by kid in insertion order.
type KeySetRepository interface {
	Save(*value_object.RSAPublicKey) error
	FindByKeyID(kid string) (*value_object.RSAPublicKey, error)
	All() ([]*value_object.RSAPublicKey, error)
}
