package value_object

import (
	"crypto/rsa"
	"fmt"

	"ikedadada/go-josekey/internal/infrastructure/crypto"
	"ikedadada/go-josekey/internal/infrastructure/der"
	"ikedadada/go-josekey/internal/infrastructure/pkcs8"
	"ikedadada/go-josekey/internal/infrastructure/util"
)

const (
	pemPrivateKey    = "PRIVATE KEY"
	pemPublicKey     = "PUBLIC KEY"
	pemRSAPrivateKey = "RSA PRIVATE KEY"
	pemRSAPublicKey  = "RSA PUBLIC KEY"
)

// rsaJWKParams are the members of a private RSA JWK in RSAPrivateKey order.
var rsaJWKParams = []string{"n", "e", "d", "p", "q", "dp", "dq", "qi"}

type RSAKeyPair struct {
	key    *rsa.PrivateKey
	keyLen int
	alg    string
	kid    string
}

// Ensure RSAKeyPair implements KeyPair interface
var _ KeyPair = (*RSAKeyPair)(nil)

func newRSAKeyPair(key *rsa.PrivateKey) *RSAKeyPair {
	return &RSAKeyPair{key: key, keyLen: key.Size()}
}

// GenerateRSAKeyPair generates a new RSA key pair with a modulus of bits.
func GenerateRSAKeyPair(bits int) (*RSAKeyPair, error) {
	key, err := crypto.GenerateRSAKey(bits)
	if err != nil {
		return nil, invalidKeyFormat(err)
	}
	return newRSAKeyPair(key), nil
}

// RSAKeyPairFromDER loads a private key encoded as PKCS#8 PrivateKeyInfo or
// PKCS#1 RSAPrivateKey.
func RSAKeyPairFromDER(input []byte) (*RSAKeyPair, error) {
	if !pkcs8.Detect(input, false) {
		input = pkcs8.Wrap(input, false)
	}
	kp, err := loadPKCS8(input)
	return kp, invalidKeyFormat(err)
}

// RSAKeyPairFromPEM loads a private key from a "PRIVATE KEY" (PKCS#8) or
// "RSA PRIVATE KEY" (PKCS#1) PEM block.
func RSAKeyPairFromPEM(input []byte) (*RSAKeyPair, error) {
	label, data, err := crypto.DecodePEM(input)
	if err != nil {
		return nil, invalidKeyFormat(err)
	}

	switch label {
	case pemPrivateKey:
		if !pkcs8.Detect(data, false) {
			return nil, invalidKeyFormat(ErrInvalidPEMContents)
		}
	case pemRSAPrivateKey:
		data = pkcs8.Wrap(data, false)
	default:
		return nil, invalidKeyFormat(fmt.Errorf("%w: %s", ErrUnsupportedPEMBlock, label))
	}

	kp, err := loadPKCS8(data)
	return kp, invalidKeyFormat(err)
}

// RSAKeyPairFromJWK loads a private key from an RSA JWK carrying all of
// n, e, d, p, q, dp, dq and qi. alg and kid are carried over.
func RSAKeyPairFromJWK(jwk *Jwk) (*RSAKeyPair, error) {
	kp, err := rsaKeyPairFromJWK(jwk)
	return kp, invalidKeyFormat(err)
}

func rsaKeyPairFromJWK(jwk *Jwk) (*RSAKeyPair, error) {
	if jwk == nil {
		return nil, util.ValidationError{Field: "kty", Message: "is required"}
	}
	if kty := jwk.KeyType(); kty != "RSA" {
		return nil, util.ValidationError{Field: "kty", Message: "must be RSA: " + kty}
	}

	values := make([][]byte, len(rsaJWKParams))
	for i, name := range rsaJWKParams {
		v, err := jwk.Base64URLParameter(name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	b := der.NewBuilder()
	b.Begin(der.TagSequence)
	b.AppendIntegerFromUint8(0) // version
	for _, v := range values {
		b.AppendIntegerFromBigEndian(v, false)
	}
	b.End()

	kp, err := loadPKCS8(pkcs8.Wrap(b.Build(), false))
	if err != nil {
		return nil, err
	}
	kp.alg = jwk.Algorithm()
	kp.kid = jwk.KeyID()
	return kp, nil
}

func loadPKCS8(b []byte) (*RSAKeyPair, error) {
	key, err := crypto.ParsePKCS8RSAPrivateKey(b)
	if err != nil {
		return nil, err
	}
	return newRSAKeyPair(key), nil
}

// KeyLen returns the modulus length in bytes
func (k *RSAKeyPair) KeyLen() int { return k.keyLen }

// KeyType returns the key type
func (k *RSAKeyPair) KeyType() string { return "RSA" }

func (k *RSAKeyPair) Algorithm() string { return k.alg }

// SetAlgorithm sets the alg emitted in JWKs. Call it before sharing the key pair.
func (k *RSAKeyPair) SetAlgorithm(alg string) { k.alg = alg }

func (k *RSAKeyPair) KeyID() string { return k.kid }

// SetKeyID sets the kid emitted in JWKs. Call it before sharing the key pair.
func (k *RSAKeyPair) SetKeyID(kid string) { k.kid = kid }

// RSAKey returns the underlying *rsa.PrivateKey for interoperability
// This method should be used sparingly and only when necessary for crypto operations
func (k *RSAKeyPair) RSAKey() *rsa.PrivateKey { return k.key }

// PublicKey returns the corresponding RSA public key
func (k *RSAKeyPair) PublicKey() *rsa.PublicKey { return &k.key.PublicKey }

// Clone returns a copy with its own labels. The key material is shared.
func (k *RSAKeyPair) Clone() *RSAKeyPair {
	cp := *k
	return &cp
}

// ToRawPrivateKey encodes the private key as PKCS#1 RSAPrivateKey
func (k *RSAKeyPair) ToRawPrivateKey() []byte {
	return crypto.MarshalPKCS1PrivateKey(k.key)
}

// ToRawPublicKey encodes the public key as PKCS#1 RSAPublicKey
func (k *RSAKeyPair) ToRawPublicKey() []byte {
	return crypto.MarshalPKCS1PublicKey(&k.key.PublicKey)
}

func (k *RSAKeyPair) ToTraditionalPEMPrivateKey() []byte {
	return crypto.EncodePEM(pemRSAPrivateKey, k.ToRawPrivateKey())
}

func (k *RSAKeyPair) ToTraditionalPEMPublicKey() []byte {
	return crypto.EncodePEM(pemRSAPublicKey, k.ToRawPublicKey())
}

func (k *RSAKeyPair) ToDERPrivateKey() []byte {
	return pkcs8.Wrap(k.ToRawPrivateKey(), false)
}

func (k *RSAKeyPair) ToDERPublicKey() []byte {
	return crypto.MarshalPKIXPublicKey(&k.key.PublicKey)
}

func (k *RSAKeyPair) ToPEMPrivateKey() []byte {
	return crypto.EncodePEM(pemPrivateKey, k.ToDERPrivateKey())
}

func (k *RSAKeyPair) ToPEMPublicKey() []byte {
	return crypto.EncodePEM(pemPublicKey, k.ToDERPublicKey())
}

func (k *RSAKeyPair) ToJWKPrivateKey() *Jwk { return k.toJWK(true) }

func (k *RSAKeyPair) ToJWKPublicKey() *Jwk { return k.toJWK(false) }

// ToJWKKeyPair is the same set of members as ToJWKPrivateKey; a private RSA
// JWK always carries the public members.
func (k *RSAKeyPair) ToJWKKeyPair() *Jwk { return k.toJWK(true) }

func (k *RSAKeyPair) toJWK(private bool) *Jwk {
	params := crypto.RSAComponents(k.key)

	jwk := NewJwk("RSA")
	jwk.SetAlgorithm(k.alg)
	jwk.SetKeyID(k.kid)
	jwk.SetBase64URLParameter("n", params.N)
	jwk.SetBase64URLParameter("e", params.E)
	if private {
		jwk.SetBase64URLParameter("d", params.D)
		jwk.SetBase64URLParameter("p", params.P)
		jwk.SetBase64URLParameter("q", params.Q)
		jwk.SetBase64URLParameter("dp", params.Dp)
		jwk.SetBase64URLParameter("dq", params.Dq)
		jwk.SetBase64URLParameter("qi", params.Qi)
	}
	return jwk
}
