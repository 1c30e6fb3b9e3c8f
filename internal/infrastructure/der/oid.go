package der

import (
	"fmt"
	"strconv"
	"strings"
)

// OIDRSAEncryption is rsaEncryption from PKCS#1 (1.2.840.113549.1.1.1).
var OIDRSAEncryption = NewObjectIdentifier(1, 2, 840, 113549, 1, 1, 1)

// ObjectIdentifier is an immutable dotted OID.
type ObjectIdentifier struct {
	arcs []uint64
}

// NewObjectIdentifier creates an ObjectIdentifier from its arcs.
func NewObjectIdentifier(arcs ...uint64) ObjectIdentifier {
	cp := make([]uint64, len(arcs))
	copy(cp, arcs)
	return ObjectIdentifier{arcs: cp}
}

// ParseObjectIdentifier parses dotted notation such as "1.2.840.113549.1.1.1".
func ParseObjectIdentifier(s string) (ObjectIdentifier, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return ObjectIdentifier{}, fmt.Errorf("%w: %q", ErrInvalidOID, s)
	}
	arcs := make([]uint64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return ObjectIdentifier{}, fmt.Errorf("%w: %q", ErrInvalidOID, s)
		}
		arcs[i] = v
	}
	oid := ObjectIdentifier{arcs: arcs}
	if err := oid.validate(); err != nil {
		return ObjectIdentifier{}, err
	}
	return oid, nil
}

// Arcs returns a copy of the arcs.
func (o ObjectIdentifier) Arcs() []uint64 {
	cp := make([]uint64, len(o.arcs))
	copy(cp, o.arcs)
	return cp
}

func (o ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	if len(o.arcs) != len(other.arcs) {
		return false
	}
	for i := range o.arcs {
		if o.arcs[i] != other.arcs[i] {
			return false
		}
	}
	return true
}

func (o ObjectIdentifier) String() string {
	var sb strings.Builder
	for i, a := range o.arcs {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(a, 10))
	}
	return sb.String()
}

func (o ObjectIdentifier) validate() error {
	if len(o.arcs) < 2 {
		return fmt.Errorf("%w: need at least two arcs", ErrInvalidOID)
	}
	if o.arcs[0] > 2 {
		return fmt.Errorf("%w: first arc %d", ErrInvalidOID, o.arcs[0])
	}
	if o.arcs[0] < 2 && o.arcs[1] >= 40 {
		return fmt.Errorf("%w: second arc %d under %d", ErrInvalidOID, o.arcs[1], o.arcs[0])
	}
	if o.arcs[0] == 2 && o.arcs[1] > ^uint64(0)-80 {
		return fmt.Errorf("%w: second arc overflows", ErrInvalidOID)
	}
	return nil
}

// Bytes returns the DER content octets of the identifier (X.690 §8.19),
// without tag and length.
func (o ObjectIdentifier) Bytes() ([]byte, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	out := appendBase128(nil, o.arcs[0]*40+o.arcs[1])
	for _, a := range o.arcs[2:] {
		out = appendBase128(out, a)
	}
	return out, nil
}

func appendBase128(dst []byte, v uint64) []byte {
	n := 1
	for t := v >> 7; t > 0; t >>= 7 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		b := byte(v>>(uint(i)*7)) & 0x7f
		if i != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// DecodeObjectIdentifier decodes DER content octets into an ObjectIdentifier.
func DecodeObjectIdentifier(content []byte) (ObjectIdentifier, error) {
	if len(content) == 0 {
		return ObjectIdentifier{}, fmt.Errorf("%w: empty", ErrInvalidOID)
	}
	var arcs []uint64
	for off := 0; off < len(content); {
		v, n, err := readBase128(content[off:])
		if err != nil {
			return ObjectIdentifier{}, err
		}
		off += n
		if arcs == nil {
			switch {
			case v < 40:
				arcs = append(arcs, 0, v)
			case v < 80:
				arcs = append(arcs, 1, v-40)
			default:
				arcs = append(arcs, 2, v-80)
			}
			continue
		}
		arcs = append(arcs, v)
	}
	return ObjectIdentifier{arcs: arcs}, nil
}

func readBase128(b []byte) (uint64, int, error) {
	if b[0] == 0x80 {
		return 0, 0, fmt.Errorf("%w: non-minimal arc", ErrInvalidOID)
	}
	var v uint64
	for i, c := range b {
		if v > ^uint64(0)>>7 {
			return 0, 0, fmt.Errorf("%w: arc overflows 64 bits", ErrInvalidOID)
		}
		v = v<<7 | uint64(c&0x7f)
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: truncated arc", ErrInvalidOID)
}
