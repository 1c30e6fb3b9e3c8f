package usecase

import (
	"fmt"

	"ikedadada/go-josekey/internal/domain/repository"
	vo "ikedadada/go-josekey/internal/domain/value_object"
)

// KeySource is one encoded key to publish.
type KeySource struct {
	Name     string
	Data     []byte
	Format   string
	IsPublic bool
}

// PublishKeySetInput lists the keys to add to the set.
type PublishKeySetInput struct {
	Sources   []KeySource
	Algorithm string
}

// PublishKeySetOutput is the resulting JWK Set document.
type PublishKeySetOutput struct {
	Document []byte
	KeyIDs   []string
}

// PublishKeySetUseCase builds a JWK Set of public keys. Keys without a kid
// are identified by their RFC 7638 thumbprint.
type PublishKeySetUseCase interface {
	Handle(in PublishKeySetInput) (PublishKeySetOutput, error)
}

type publishKeySetUseCaseImpl struct {
	repo repository.KeySetRepository
}

// NewPublishKeySetUseCase creates a use case that adds keys to repo.
func NewPublishKeySetUseCase(r repository.KeySetRepository) PublishKeySetUseCase {
	return &publishKeySetUseCaseImpl{repo: r}
}

func (uc *publishKeySetUseCaseImpl) Handle(in PublishKeySetInput) (PublishKeySetOutput, error) {
	for _, src := range in.Sources {
		pub, err := loadPublicKey(src.Data, src.Format, src.IsPublic)
		if err != nil {
			return PublishKeySetOutput{}, fmt.Errorf("load %s: %w", src.Name, err)
		}
		if pub.KeyID() == "" {
			pub.SetKeyID(pub.Thumbprint())
		}
		if pub.Algorithm() == "" {
			pub.SetAlgorithm(in.Algorithm)
		}
		if err := uc.repo.Save(pub); err != nil {
			return PublishKeySetOutput{}, fmt.Errorf("save %s: %w", src.Name, err)
		}
	}

	keys, err := uc.repo.All()
	if err != nil {
		return PublishKeySetOutput{}, fmt.Errorf("list keys: %w", err)
	}
	out := PublishKeySetOutput{KeyIDs: make([]string, 0, len(keys))}
	jwks := make([]*vo.Jwk, 0, len(keys))
	for _, k := range keys {
		jwks = append(jwks, k.ToJWKPublicKey())
		out.KeyIDs = append(out.KeyIDs, k.KeyID())
	}
	out.Document = vo.NewJwkSet(jwks...).Bytes()
	return out, nil
}
