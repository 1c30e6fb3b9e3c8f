package value_object_test

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"strings"
	"sync"
	"testing"

	vo "ikedadada/go-josekey/internal/domain/value_object"
	"ikedadada/go-josekey/internal/infrastructure/crypto"
	"ikedadada/go-josekey/internal/infrastructure/pkcs8"
	"ikedadada/go-josekey/internal/infrastructure/util"
)

var sharedKeyPair = sync.OnceValues(func() (*vo.RSAKeyPair, error) {
	return vo.GenerateRSAKeyPair(2048)
})

// testKeyPair returns a private copy of a shared 2048 bit key pair.
func testKeyPair(t *testing.T) *vo.RSAKeyPair {
	t.Helper()
	kp, err := sharedKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate RSA key pair: %v", err)
	}
	return kp.Clone()
}

func TestGenerateRSAKeyPair(t *testing.T) {
	kp := testKeyPair(t)
	if kp.KeyLen() != 256 {
		t.Errorf("KeyLen() = %d, want 256", kp.KeyLen())
	}
	if kp.KeyType() != "RSA" {
		t.Errorf("KeyType() = %q", kp.KeyType())
	}

	for _, bits := range []int{0, 512, crypto.MaxRSABits + 1} {
		_, err := vo.GenerateRSAKeyPair(bits)
		if !errors.Is(err, vo.ErrInvalidKeyFormat) {
			t.Errorf("bits=%d: expected ErrInvalidKeyFormat, got %v", bits, err)
		}
		if !errors.Is(err, crypto.ErrInvalidKeySize) {
			t.Errorf("bits=%d: expected ErrInvalidKeySize, got %v", bits, err)
		}
	}
}

func TestRSAKeyPairFromDER(t *testing.T) {
	kp := testKeyPair(t)

	tests := []struct {
		name  string
		input []byte
	}{
		{"pkcs8", kp.ToDERPrivateKey()},
		{"pkcs1", kp.ToRawPrivateKey()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, err := vo.RSAKeyPairFromDER(tt.input)
			if err != nil {
				t.Fatalf("RSAKeyPairFromDER: %v", err)
			}
			if !loaded.RSAKey().Equal(kp.RSAKey()) {
				t.Error("loaded key differs from original")
			}
			if !bytes.Equal(loaded.ToDERPrivateKey(), kp.ToDERPrivateKey()) {
				t.Error("DER round trip is not stable")
			}
		})
	}

	_, err := vo.RSAKeyPairFromDER([]byte{0x30, 0x03, 0x02, 0x01, 0x00})
	var kfe *vo.InvalidKeyFormatError
	if !errors.As(err, &kfe) {
		t.Fatalf("expected InvalidKeyFormatError, got %v", err)
	}
}

func TestRSAKeyPair_ToDERPrivateKeyMatchesX509(t *testing.T) {
	kp := testKeyPair(t)
	want, err := x509.MarshalPKCS8PrivateKey(kp.RSAKey())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(kp.ToDERPrivateKey(), want) {
		t.Error("ToDERPrivateKey differs from x509.MarshalPKCS8PrivateKey")
	}
}

func TestRSAKeyPair_ToDERPublicKey(t *testing.T) {
	kp := testKeyPair(t)
	pub := kp.ToDERPublicKey()

	if !pkcs8.Detect(pub, true) {
		t.Error("public key is not a SubjectPublicKeyInfo")
	}
	parsed, err := x509.ParsePKIXPublicKey(pub)
	if err != nil {
		t.Fatalf("ParsePKIXPublicKey: %v", err)
	}
	if !kp.PublicKey().Equal(parsed) {
		t.Error("parsed public key differs")
	}
}

func TestRSAKeyPairFromPEM(t *testing.T) {
	kp := testKeyPair(t)

	tests := []struct {
		name    string
		input   []byte
		wantErr string
	}{
		{"pkcs8", kp.ToPEMPrivateKey(), ""},
		{"traditional", kp.ToTraditionalPEMPrivateKey(), ""},
		{
			"pkcs1 under PRIVATE KEY",
			pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: kp.ToRawPrivateKey()}),
			"Invalid PEM contents",
		},
		{
			"ec label",
			pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: kp.ToRawPrivateKey()}),
			"Inappropriate algorithm: EC PRIVATE KEY",
		},
		{"public key", kp.ToPEMPublicKey(), "Inappropriate algorithm: PUBLIC KEY"},
		{"no pem", []byte("hello"), crypto.ErrNoPEMData.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, err := vo.RSAKeyPairFromPEM(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !loaded.RSAKey().Equal(kp.RSAKey()) {
					t.Error("loaded key differs from original")
				}
				return
			}
			if !errors.Is(err, vo.ErrInvalidKeyFormat) {
				t.Fatalf("expected ErrInvalidKeyFormat, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRSAKeyPair_PEMLabels(t *testing.T) {
	kp := testKeyPair(t)
	tests := []struct {
		name  string
		input []byte
		label string
	}{
		{"pkcs8 private", kp.ToPEMPrivateKey(), "PRIVATE KEY"},
		{"spki public", kp.ToPEMPublicKey(), "PUBLIC KEY"},
		{"pkcs1 private", kp.ToTraditionalPEMPrivateKey(), "RSA PRIVATE KEY"},
		{"pkcs1 public", kp.ToTraditionalPEMPublicKey(), "RSA PUBLIC KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, rest := pem.Decode(tt.input)
			if block == nil || len(rest) != 0 {
				t.Fatal("expected exactly one PEM block")
			}
			if block.Type != tt.label {
				t.Errorf("label = %q, want %q", block.Type, tt.label)
			}
		})
	}
}

func TestRSAKeyPair_JWKRoundTrip(t *testing.T) {
	kp := testKeyPair(t)
	kp.SetAlgorithm("RS256")
	kp.SetKeyID("key-1")

	jwk := kp.ToJWKKeyPair()
	parsed, err := vo.JwkFromBytes(jwk.Bytes())
	if err != nil {
		t.Fatalf("JwkFromBytes: %v", err)
	}
	loaded, err := vo.RSAKeyPairFromJWK(parsed)
	if err != nil {
		t.Fatalf("RSAKeyPairFromJWK: %v", err)
	}
	if !loaded.RSAKey().Equal(kp.RSAKey()) {
		t.Error("loaded key differs from original")
	}
	if loaded.Algorithm() != "RS256" || loaded.KeyID() != "key-1" {
		t.Errorf("alg/kid = %q/%q", loaded.Algorithm(), loaded.KeyID())
	}

	again := loaded.ToJWKPrivateKey()
	for _, name := range []string{"kty", "alg", "kid", "n", "e", "d", "p", "q", "dp", "dq", "qi"} {
		want, _ := jwk.Parameter(name)
		got, _ := again.Parameter(name)
		if got != want {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}
	if jwk.String() != again.String() {
		t.Error("JWK serialisation is not stable")
	}
}

func TestRSAKeyPair_JWKMembersAreMinimal(t *testing.T) {
	kp := testKeyPair(t)
	jwk := kp.ToJWKPrivateKey()

	for _, name := range []string{"n", "e", "d", "p", "q", "dp", "dq", "qi"} {
		v, err := jwk.Base64URLParameter(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(v) > 1 && v[0] == 0 {
			t.Errorf("%s carries a leading zero byte", name)
		}
	}
	if e, _ := jwk.StringParameter("e"); e != "AQAB" {
		t.Errorf("e = %q, want AQAB", e)
	}
}

func TestRSAKeyPair_ToJWKPublicKey(t *testing.T) {
	kp := testKeyPair(t)

	pub := kp.ToJWKPublicKey()
	for _, name := range []string{"d", "p", "q", "dp", "dq", "qi", "alg", "kid"} {
		if _, ok := pub.Parameter(name); ok {
			t.Errorf("public JWK carries %s", name)
		}
	}
	for _, name := range []string{"kty", "n", "e"} {
		if _, ok := pub.Parameter(name); !ok {
			t.Errorf("public JWK misses %s", name)
		}
	}

	kp.SetAlgorithm("PS256")
	kp.SetKeyID("k")
	pub = kp.ToJWKPublicKey()
	if pub.Algorithm() != "PS256" || pub.KeyID() != "k" {
		t.Errorf("alg/kid = %q/%q", pub.Algorithm(), pub.KeyID())
	}
}

func TestRSAKeyPairFromJWK_Invalid(t *testing.T) {
	kp := testKeyPair(t)

	withParam := func(name string, value any) *vo.Jwk {
		jwk, err := vo.JwkFromBytes(kp.ToJWKKeyPair().Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if err := jwk.SetParameter(name, value); err != nil {
			t.Fatal(err)
		}
		return jwk
	}

	tests := []struct {
		name    string
		jwk     *vo.Jwk
		field   string
		message string
	}{
		{"nil", nil, "kty", "A parameter kty is required."},
		{"ec key type", withParam("kty", "EC"), "kty", "A parameter kty must be RSA: EC."},
		{"missing qi", withParam("qi", nil), "qi", "A parameter qi is required."},
		{"missing n", withParam("n", nil), "n", "A parameter n is required."},
		{"numeric d", withParam("d", 42.0), "d", "A parameter d must be a string."},
		{"padded dp", withParam("dp", "AQAB=="), "dp", "A parameter dp must be base64url encoded."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vo.RSAKeyPairFromJWK(tt.jwk)
			if !errors.Is(err, vo.ErrInvalidKeyFormat) {
				t.Fatalf("expected ErrInvalidKeyFormat, got %v", err)
			}
			var ve util.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
			if ve.Error() != tt.message {
				t.Errorf("message = %q, want %q", ve.Error(), tt.message)
			}
		})
	}

	t.Run("inconsistent components", func(t *testing.T) {
		_, err := vo.RSAKeyPairFromJWK(withParam("d", "AQAB"))
		if !errors.Is(err, vo.ErrInvalidKeyFormat) {
			t.Errorf("expected ErrInvalidKeyFormat, got %v", err)
		}
	})
}

func TestRSAKeyPair_Clone(t *testing.T) {
	kp := testKeyPair(t)
	kp.SetAlgorithm("RS256")

	cp := kp.Clone()
	cp.SetAlgorithm("RS512")
	cp.SetKeyID("other")

	if kp.Algorithm() != "RS256" || kp.KeyID() != "" {
		t.Errorf("original changed: %q/%q", kp.Algorithm(), kp.KeyID())
	}
	if !cp.RSAKey().Equal(kp.RSAKey()) {
		t.Error("clone has different key material")
	}
}

func TestRSAKeyPair_ImplementsKeyPair(t *testing.T) {
	var kp vo.KeyPair = testKeyPair(t)
	if kp.KeyType() != "RSA" {
		t.Errorf("KeyType() = %q", kp.KeyType())
	}
	if kp.ToJWKKeyPair().String() != kp.ToJWKPrivateKey().String() {
		t.Error("ToJWKKeyPair should match ToJWKPrivateKey")
	}
}
