package usecase

import (
	vo "ikedadada/go-josekey/internal/domain/value_object"
	"ikedadada/go-josekey/internal/infrastructure/util"
)

var (
	// InputFormats are the encodings keys can be read from.
	InputFormats = []string{"pem", "der", "jwk"}
	// OutputFormats are the encodings keys can be written in.
	OutputFormats = []string{"pem", "der", "jwk", "raw", "traditional"}
)

func loadKeyPair(data []byte, format string) (*vo.RSAKeyPair, error) {
	switch format {
	case "pem":
		return vo.RSAKeyPairFromPEM(data)
	case "der":
		return vo.RSAKeyPairFromDER(data)
	case "jwk":
		jwk, err := vo.JwkFromBytes(data)
		if err != nil {
			return nil, err
		}
		return vo.RSAKeyPairFromJWK(jwk)
	}
	return nil, util.ValidateOneOf(format, InputFormats, "from")
}

// loadPublicKey reads a public key, or the public half of a private key
// when isPublic is false.
func loadPublicKey(data []byte, format string, isPublic bool) (*vo.RSAPublicKey, error) {
	if !isPublic {
		kp, err := loadKeyPair(data, format)
		if err != nil {
			return nil, err
		}
		return kp.ToPublicKey(), nil
	}
	switch format {
	case "pem":
		return vo.RSAPublicKeyFromPEM(data)
	case "der":
		return vo.RSAPublicKeyFromDER(data)
	case "jwk":
		jwk, err := vo.JwkFromBytes(data)
		if err != nil {
			return nil, err
		}
		return vo.RSAPublicKeyFromJWK(jwk)
	}
	return nil, util.ValidateOneOf(format, InputFormats, "from")
}
