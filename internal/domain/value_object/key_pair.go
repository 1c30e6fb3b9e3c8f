package value_object

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKeyFormat    = errors.New("invalid key format")
	ErrInvalidPEMContents  = errors.New("Invalid PEM contents")
	ErrUnsupportedPEMBlock = errors.New("Inappropriate algorithm")
)

// InvalidKeyFormatError is the only error kind returned by the key pair
// constructors. Err holds the underlying cause.
type InvalidKeyFormatError struct {
	Err error
}

func (e *InvalidKeyFormatError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidKeyFormat, e.Err)
}

func (e *InvalidKeyFormatError) Unwrap() error { return e.Err }

func (e *InvalidKeyFormatError) Is(target error) bool {
	return target == ErrInvalidKeyFormat
}

func invalidKeyFormat(err error) error {
	if err == nil {
		return nil
	}
	return &InvalidKeyFormatError{Err: err}
}

// KeyPair is implemented by every asymmetric key family that can be
// converted between DER, PEM and JWK.
type KeyPair interface {
	// KeyType returns the JWK kty of the key (RSA, EC, ...)
	KeyType() string

	// Algorithm returns the JWK alg label, or "" if none is set
	Algorithm() string

	// ToDERPrivateKey encodes the private key as PKCS#8 PrivateKeyInfo
	ToDERPrivateKey() []byte

	// ToDERPublicKey encodes the public key as X.509 SubjectPublicKeyInfo
	ToDERPublicKey() []byte

	ToPEMPrivateKey() []byte
	ToPEMPublicKey() []byte

	ToJWKPrivateKey() *Jwk
	ToJWKPublicKey() *Jwk
	ToJWKKeyPair() *Jwk
}
