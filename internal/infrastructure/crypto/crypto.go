package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
)

const (
	MinRSABits = 1024
	MaxRSABits = 16384
)

var (
	ErrNoPEMData      = errors.New("no PEM data")
	ErrInvalidKeySize = errors.New("invalid RSA key size")
	ErrNotRSAKey      = errors.New("not RSA private key")
	ErrInvalidPubKey  = errors.New("invalid RSA public key")
)

// RSAParams holds the components of an RSA private key as unsigned
// big-endian byte strings.
type RSAParams struct {
	N, E, D, P, Q, Dp, Dq, Qi []byte
}

// GenerateRSAKey generates an RSA private key of the given modulus size.
func GenerateRSAKey(bits int) (*rsa.PrivateKey, error) {
	if bits < MinRSABits || bits > MaxRSABits {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidKeySize, bits)
	}
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generate RSA key: %w", err)
	}
	return key, nil
}

// ParsePKCS8RSAPrivateKey loads an RSA key from PKCS#8 PrivateKeyInfo DER.
func ParsePKCS8RSAPrivateKey(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrNotRSAKey
	}
	if err := rsaKey.Validate(); err != nil {
		return nil, err
	}
	return rsaKey, nil
}

// NewRSAPublicKey assembles a public key from unsigned big-endian n and e.
func NewRSAPublicKey(n, e []byte) (*rsa.PublicKey, error) {
	modulus := new(big.Int).SetBytes(n)
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: zero modulus", ErrInvalidPubKey)
	}
	exponent := new(big.Int).SetBytes(e)
	if !exponent.IsInt64() || exponent.Int64() < 2 || exponent.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("%w: exponent out of range", ErrInvalidPubKey)
	}
	return &rsa.PublicKey{N: modulus, E: int(exponent.Int64())}, nil
}

func MarshalPKCS1PrivateKey(key *rsa.PrivateKey) []byte {
	return x509.MarshalPKCS1PrivateKey(key)
}

func MarshalPKCS1PublicKey(key *rsa.PublicKey) []byte {
	return x509.MarshalPKCS1PublicKey(key)
}

// MarshalPKIXPublicKey encodes key as an X.509 SubjectPublicKeyInfo.
func MarshalPKIXPublicKey(key *rsa.PublicKey) []byte {
	b, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		// only reachable for unsupported key types
		panic(err)
	}
	return b
}

// EncodePEM wraps der in a PEM block with the given label.
func EncodePEM(label string, der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: label, Bytes: der})
}

// DecodePEM returns the label and decoded bytes of the first PEM block.
func DecodePEM(b []byte) (string, []byte, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return "", nil, ErrNoPEMData
	}
	return block.Type, block.Bytes, nil
}

// RSAPublicComponents returns n and e as unsigned big-endian byte strings.
func RSAPublicComponents(key *rsa.PublicKey) (n, e []byte) {
	return key.N.Bytes(), big.NewInt(int64(key.E)).Bytes()
}

// RSAComponents exposes the key's integers. Precomputed CRT values are
// filled in if the key has not been precomputed yet.
func RSAComponents(key *rsa.PrivateKey) RSAParams {
	if key.Precomputed.Dp == nil {
		key.Precompute()
	}
	return RSAParams{
		N:  key.N.Bytes(),
		E:  big.NewInt(int64(key.E)).Bytes(),
		D:  key.D.Bytes(),
		P:  key.Primes[0].Bytes(),
		Q:  key.Primes[1].Bytes(),
		Dp: key.Precomputed.Dp.Bytes(),
		Dq: key.Precomputed.Dq.Bytes(),
		Qi: key.Precomputed.Qinv.Bytes(),
	}
}
