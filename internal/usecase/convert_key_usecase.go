package usecase

import (
	"fmt"

	vo "ikedadada/go-josekey/internal/domain/value_object"
	"ikedadada/go-josekey/internal/infrastructure/util"
)

// ConvertKeyInput describes one key conversion.
type ConvertKeyInput struct {
	Data      []byte
	From      string
	To        string
	Public    bool // emit only the public key
	PublicIn  bool // Data holds a public key; implies Public
	Algorithm string
	KeyID     string
}

// ConvertKeyOutput holds the encoded key.
type ConvertKeyOutput struct {
	Data []byte
}

// ConvertKeyUseCase re-encodes an RSA key between PEM, DER and JWK.
type ConvertKeyUseCase interface {
	Handle(in ConvertKeyInput) (ConvertKeyOutput, error)
}

type convertKeyUseCaseImpl struct{}

// NewConvertKeyUseCase creates a use case for key conversion.
func NewConvertKeyUseCase() ConvertKeyUseCase {
	return &convertKeyUseCaseImpl{}
}

func (uc *convertKeyUseCaseImpl) Handle(in ConvertKeyInput) (ConvertKeyOutput, error) {
	if err := util.ValidateOneOf(in.From, InputFormats, "from"); err != nil {
		return ConvertKeyOutput{}, err
	}
	if err := util.ValidateOneOf(in.To, OutputFormats, "to"); err != nil {
		return ConvertKeyOutput{}, err
	}

	if in.PublicIn || in.Public {
		pub, err := loadPublicKey(in.Data, in.From, in.PublicIn)
		if err != nil {
			return ConvertKeyOutput{}, fmt.Errorf("load public key: %w", err)
		}
		if in.Algorithm != "" {
			pub.SetAlgorithm(in.Algorithm)
		}
		if in.KeyID != "" {
			pub.SetKeyID(in.KeyID)
		}
		return ConvertKeyOutput{Data: encodePublicKey(pub, in.To)}, nil
	}

	kp, err := loadKeyPair(in.Data, in.From)
	if err != nil {
		return ConvertKeyOutput{}, fmt.Errorf("load key pair: %w", err)
	}
	if in.Algorithm != "" {
		kp.SetAlgorithm(in.Algorithm)
	}
	if in.KeyID != "" {
		kp.SetKeyID(in.KeyID)
	}
	return ConvertKeyOutput{Data: encodePrivateKey(kp, in.To)}, nil
}

func encodePrivateKey(kp *vo.RSAKeyPair, format string) []byte {
	switch format {
	case "der":
		return kp.ToDERPrivateKey()
	case "jwk":
		return kp.ToJWKKeyPair().Bytes()
	case "raw":
		return kp.ToRawPrivateKey()
	case "traditional":
		return kp.ToTraditionalPEMPrivateKey()
	default:
		return kp.ToPEMPrivateKey()
	}
}

func encodePublicKey(pub *vo.RSAPublicKey, format string) []byte {
	switch format {
	case "der":
		return pub.ToDERPublicKey()
	case "jwk":
		return pub.ToJWKPublicKey().Bytes()
	case "raw":
		return pub.ToRawPublicKey()
	case "traditional":
		return pub.ToTraditionalPEMPublicKey()
	default:
		return pub.ToPEMPublicKey()
	}
}
