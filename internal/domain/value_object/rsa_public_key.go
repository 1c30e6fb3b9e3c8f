package value_object

import (
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	"ikedadada/go-josekey/internal/infrastructure/crypto"
	"ikedadada/go-josekey/internal/infrastructure/der"
	"ikedadada/go-josekey/internal/infrastructure/pkcs8"
	"ikedadada/go-josekey/internal/infrastructure/util"
)

// RSAPublicKey is the public half of an RSA key with its JWK labels.
type RSAPublicKey struct {
	key *rsa.PublicKey
	alg string
	kid string
}

// RSAPublicKeyFromDER loads a public key encoded as SubjectPublicKeyInfo or
// PKCS#1 RSAPublicKey.
func RSAPublicKeyFromDER(input []byte) (*RSAPublicKey, error) {
	k, err := rsaPublicKeyFromDER(input)
	return k, invalidKeyFormat(err)
}

func rsaPublicKeyFromDER(input []byte) (*RSAPublicKey, error) {
	raw := input
	if pkcs8.Detect(input, true) {
		var err error
		if raw, err = pkcs8.Unwrap(input, true); err != nil {
			return nil, err
		}
	}
	return parsePKCS1PublicKey(raw)
}

// RSAPublicKeyFromPEM loads a public key from a "PUBLIC KEY" or
// "RSA PUBLIC KEY" PEM block.
func RSAPublicKeyFromPEM(input []byte) (*RSAPublicKey, error) {
	label, data, err := crypto.DecodePEM(input)
	if err != nil {
		return nil, invalidKeyFormat(err)
	}

	switch label {
	case pemPublicKey:
		if !pkcs8.Detect(data, true) {
			return nil, invalidKeyFormat(ErrInvalidPEMContents)
		}
		data, err = pkcs8.Unwrap(data, true)
		if err != nil {
			return nil, invalidKeyFormat(err)
		}
	case pemRSAPublicKey:
	default:
		return nil, invalidKeyFormat(fmt.Errorf("%w: %s", ErrUnsupportedPEMBlock, label))
	}

	k, err := parsePKCS1PublicKey(data)
	return k, invalidKeyFormat(err)
}

// RSAPublicKeyFromJWK loads the n and e members of an RSA JWK. Private
// members, if present, are ignored.
func RSAPublicKeyFromJWK(jwk *Jwk) (*RSAPublicKey, error) {
	k, err := rsaPublicKeyFromJWK(jwk)
	return k, invalidKeyFormat(err)
}

func rsaPublicKeyFromJWK(jwk *Jwk) (*RSAPublicKey, error) {
	if jwk == nil {
		return nil, util.ValidationError{Field: "kty", Message: "is required"}
	}
	if kty := jwk.KeyType(); kty != "RSA" {
		return nil, util.ValidationError{Field: "kty", Message: "must be RSA: " + kty}
	}
	n, err := jwk.Base64URLParameter("n")
	if err != nil {
		return nil, err
	}
	e, err := jwk.Base64URLParameter("e")
	if err != nil {
		return nil, err
	}
	key, err := crypto.NewRSAPublicKey(n, e)
	if err != nil {
		return nil, err
	}
	return &RSAPublicKey{key: key, alg: jwk.Algorithm(), kid: jwk.KeyID()}, nil
}

// parsePKCS1PublicKey reads SEQUENCE { INTEGER n, INTEGER e }.
func parsePKCS1PublicKey(raw []byte) (*RSAPublicKey, error) {
	r := der.NewReader(raw)
	if err := r.Expect(der.TagSequence); err != nil {
		return nil, err
	}
	seq, err := r.Nested()
	if err != nil {
		return nil, err
	}
	r.Skip()
	if err := r.Expect(der.TagNone); err != nil {
		return nil, err
	}

	var ints [2][]byte
	for i := range ints {
		if err := seq.Expect(der.TagInteger); err != nil {
			return nil, err
		}
		if ints[i], err = seq.BigEndianUnsigned(); err != nil {
			return nil, err
		}
	}
	if err := seq.Expect(der.TagNone); err != nil {
		return nil, err
	}

	key, err := crypto.NewRSAPublicKey(ints[0], ints[1])
	if err != nil {
		return nil, err
	}
	return &RSAPublicKey{key: key}, nil
}

// ToPublicKey returns the public half of the key pair, keeping alg and kid.
func (k *RSAKeyPair) ToPublicKey() *RSAPublicKey {
	return &RSAPublicKey{key: &k.key.PublicKey, alg: k.alg, kid: k.kid}
}

// KeyType returns the key type
func (k *RSAPublicKey) KeyType() string { return "RSA" }

// KeyLen returns the modulus length in bytes
func (k *RSAPublicKey) KeyLen() int { return k.key.Size() }

func (k *RSAPublicKey) Algorithm() string { return k.alg }

func (k *RSAPublicKey) SetAlgorithm(alg string) { k.alg = alg }

func (k *RSAPublicKey) KeyID() string { return k.kid }

func (k *RSAPublicKey) SetKeyID(kid string) { k.kid = kid }

// RSAKey returns the underlying *rsa.PublicKey
func (k *RSAPublicKey) RSAKey() *rsa.PublicKey { return k.key }

// Equal reports whether both values hold the same key material.
func (k *RSAPublicKey) Equal(other *RSAPublicKey) bool {
	return other != nil && k.key.Equal(other.key)
}

func (k *RSAPublicKey) ToRawPublicKey() []byte {
	return crypto.MarshalPKCS1PublicKey(k.key)
}

func (k *RSAPublicKey) ToTraditionalPEMPublicKey() []byte {
	return crypto.EncodePEM(pemRSAPublicKey, k.ToRawPublicKey())
}

func (k *RSAPublicKey) ToDERPublicKey() []byte {
	return pkcs8.Wrap(k.ToRawPublicKey(), true)
}

func (k *RSAPublicKey) ToPEMPublicKey() []byte {
	return crypto.EncodePEM(pemPublicKey, k.ToDERPublicKey())
}

func (k *RSAPublicKey) ToJWKPublicKey() *Jwk {
	jwk := k.thumbprintInput()
	jwk.SetAlgorithm(k.alg)
	jwk.SetKeyID(k.kid)
	return jwk
}

// Thumbprint returns the RFC 7638 SHA-256 JWK thumbprint, base64url encoded.
func (k *RSAPublicKey) Thumbprint() string {
	sum := sha256.Sum256(k.thumbprintInput().Bytes())
	return util.EncodeBase64URL(sum[:])
}

// thumbprintInput holds only the required members; Bytes sorts them.
func (k *RSAPublicKey) thumbprintInput() *Jwk {
	n, e := crypto.RSAPublicComponents(k.key)
	jwk := NewJwk("RSA")
	jwk.SetBase64URLParameter("n", n)
	jwk.SetBase64URLParameter("e", e)
	return jwk
}
