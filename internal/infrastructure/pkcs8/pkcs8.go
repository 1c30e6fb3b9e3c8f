// Package pkcs8 recognises, builds and opens PKCS#8 PrivateKeyInfo and
// SubjectPublicKeyInfo envelopes around PKCS#1 RSA keys.
package pkcs8

import (
	"errors"

	"ikedadada/go-josekey/internal/infrastructure/der"
)

var ErrNotPKCS8 = errors.New("pkcs8: not an rsaEncryption PKCS#8 envelope")

// Detect reports whether b is
//
//	SEQUENCE {
//	  INTEGER 0                                -- private keys only
//	  SEQUENCE { OID rsaEncryption, NULL }
//	  OCTET STRING / BIT STRING                -- private / public
//	}
//
// Anything else, including malformed DER, is simply not a match.
func Detect(b []byte, isPublic bool) bool {
	_, ok := open(b, isPublic)
	return ok
}

// Wrap places PKCS#1 key bytes in the canonical envelope.
func Wrap(raw []byte, isPublic bool) []byte {
	b := der.NewBuilder()
	b.Begin(der.TagSequence)
	if !isPublic {
		b.AppendIntegerFromUint8(0)
	}
	b.Begin(der.TagSequence)
	b.AppendObjectIdentifier(der.OIDRSAEncryption)
	b.AppendNull()
	b.End()
	if isPublic {
		b.AppendBitString(raw, 0)
	} else {
		b.AppendOctetString(raw)
	}
	b.End()
	return b.Build()
}

// Unwrap returns the PKCS#1 key bytes inside an envelope accepted by Detect.
func Unwrap(b []byte, isPublic bool) ([]byte, error) {
	key, ok := open(b, isPublic)
	if !ok {
		return nil, ErrNotPKCS8
	}
	out := make([]byte, len(key))
	copy(out, key)
	return out, nil
}

func open(b []byte, isPublic bool) ([]byte, bool) {
	top := der.NewReader(b)
	if tag, err := top.Next(); err != nil || tag != der.TagSequence {
		return nil, false
	}
	info, err := top.Nested()
	if err != nil {
		return nil, false
	}
	top.Skip()
	if tag, err := top.Next(); err != nil || tag != der.TagNone {
		return nil, false
	}

	if !isPublic {
		if tag, err := info.Next(); err != nil || tag != der.TagInteger {
			return nil, false
		}
		if v, err := info.Uint8(); err != nil || v != 0 {
			return nil, false
		}
	}

	if tag, err := info.Next(); err != nil || tag != der.TagSequence {
		return nil, false
	}
	if !isRSAAlgorithm(info) {
		return nil, false
	}
	info.Skip()

	var key []byte
	tag, err := info.Next()
	switch {
	case err != nil:
		return nil, false
	case isPublic && tag == der.TagBitString:
		key, err = info.BitString(0)
	case !isPublic && tag == der.TagOctetString:
		key, err = info.OctetString()
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	if tag, err := info.Next(); err != nil || tag != der.TagNone {
		return nil, false
	}
	return key, true
}

// isRSAAlgorithm checks the AlgorithmIdentifier the reader is positioned on.
func isRSAAlgorithm(r *der.Reader) bool {
	alg, err := r.Nested()
	if err != nil {
		return false
	}
	if tag, err := alg.Next(); err != nil || tag != der.TagObjectIdentifier {
		return false
	}
	if oid, err := alg.ObjectIdentifier(); err != nil || !oid.Equal(der.OIDRSAEncryption) {
		return false
	}
	if tag, err := alg.Next(); err != nil || tag != der.TagNull {
		return false
	}
	if err := alg.Null(); err != nil {
		return false
	}
	tag, err := alg.Next()
	return err == nil && tag == der.TagNone
}
