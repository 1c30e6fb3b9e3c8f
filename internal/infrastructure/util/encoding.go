package util

import "encoding/base64"

// EncodeBase64URL encodes b with the URL-safe alphabet and no padding, as
// used by JWK integer parameters.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64URL decodes unpadded base64url text.
func DecodeBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
