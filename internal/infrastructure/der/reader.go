package der

import "fmt"

// MaxDepth bounds how many nested readers Nested will hand out.
const MaxDepth = 64

// Reader walks a DER buffer one element at a time.
//
// Next decodes a header and positions the cursor on the element's value.
// Primitive values are consumed by the typed accessors; constructed values
// leave the cursor on their first child so a flat walk descends into them.
// Callers that prefer scoping use Nested, then Skip on the outer reader.
type Reader struct {
	buf   []byte
	pos   int
	depth int

	tag      Tag
	valStart int
	valLen   int
	// pending is set while a primitive value sits unread at the cursor.
	pending bool
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Depth is the nesting level of the reader, 0 for the outermost.
func (r *Reader) Depth() int { return r.depth }

// Tag returns the tag decoded by the last call to Next.
func (r *Reader) Tag() Tag { return r.tag }

// Len returns the declared length of the current element.
func (r *Reader) Len() int { return r.valLen }

// Next decodes the next tag and length. It returns TagNone once the buffer is
// exhausted.
func (r *Reader) Next() (Tag, error) {
	if r.pending {
		r.pos = r.valStart + r.valLen
		r.pending = false
	}
	if r.pos >= len(r.buf) {
		r.tag = TagNone
		r.valStart, r.valLen = r.pos, 0
		return TagNone, nil
	}

	b := r.buf[r.pos]
	if b&0x1f == 0x1f {
		return TagNone, fmt.Errorf("%w: high tag number form at offset %d", ErrMalformed, r.pos)
	}
	tag, ok := tagFromByte(b)
	if !ok {
		return TagNone, fmt.Errorf("%w: 0x%02x at offset %d", ErrUnsupportedTag, b, r.pos)
	}

	length, n, err := decodeLength(r.buf[r.pos+1:])
	if err != nil {
		return TagNone, fmt.Errorf("%w at offset %d", err, r.pos)
	}
	start := r.pos + 1 + n
	if length > len(r.buf)-start {
		return TagNone, fmt.Errorf("%w: %s needs %d bytes, %d left", ErrTruncated, tag, length, len(r.buf)-start)
	}

	r.tag = tag
	r.valStart = start
	r.valLen = length
	r.pos = start
	r.pending = !tag.Constructed()
	return tag, nil
}

// Expect calls Next and fails unless the decoded tag is want. Pass TagNone
// to require the end of input.
func (r *Reader) Expect(want Tag) error {
	tag, err := r.Next()
	if err != nil {
		return err
	}
	if tag != want {
		if want == TagNone {
			return fmt.Errorf("%w: trailing %s", ErrMalformed, tag)
		}
		return fmt.Errorf("%w: want %s, have %s", ErrUnexpectedTag, want, tag)
	}
	return nil
}

// decodeLength parses a definite-form length and returns it with the number
// of header bytes used.
func decodeLength(b []byte) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("%w: missing length", ErrTruncated)
	}
	first := b[0]
	if first < 0x80 {
		return int(first), 1, nil
	}
	n := int(first & 0x7f)
	switch {
	case n == 0:
		return 0, 0, fmt.Errorf("%w: indefinite length", ErrMalformed)
	case n > 4:
		return 0, 0, fmt.Errorf("%w: length of length %d", ErrMalformed, n)
	case len(b) < 1+n:
		return 0, 0, fmt.Errorf("%w: length bytes", ErrTruncated)
	}
	if b[1] == 0 {
		return 0, 0, fmt.Errorf("%w: leading zero in length", ErrMalformed)
	}
	length := 0
	for _, c := range b[1 : 1+n] {
		length = length<<8 | int(c)
	}
	if length < 0x80 {
		return 0, 0, fmt.Errorf("%w: long form for length %d", ErrMalformed, length)
	}
	return length, 1 + n, nil
}

// Contents returns the value bytes of the current element.
func (r *Reader) Contents() ([]byte, error) {
	if r.tag == TagNone {
		return nil, fmt.Errorf("%w: no current element", ErrUnexpectedTag)
	}
	return r.buf[r.valStart : r.valStart+r.valLen], nil
}

// Nested returns a reader over the current constructed element.
func (r *Reader) Nested() (*Reader, error) {
	if !r.tag.Constructed() {
		return nil, fmt.Errorf("%w: %s is not constructed", ErrUnexpectedTag, r.tag)
	}
	if r.depth+1 > MaxDepth {
		return nil, ErrTooDeep
	}
	content, err := r.Contents()
	if err != nil {
		return nil, err
	}
	return &Reader{buf: content, depth: r.depth + 1}, nil
}

// Skip moves the cursor past the whole current element, including any
// children that were never read.
func (r *Reader) Skip() {
	if r.tag == TagNone {
		return
	}
	r.pos = r.valStart + r.valLen
	r.pending = false
}

func (r *Reader) primitive(want Tag) ([]byte, error) {
	if r.tag != want {
		return nil, fmt.Errorf("%w: want %s, have %s", ErrUnexpectedTag, want, r.tag)
	}
	if !r.pending {
		return nil, fmt.Errorf("%w: %s already consumed", ErrUnexpectedTag, want)
	}
	end := r.valStart + r.valLen
	if end > len(r.buf) {
		return nil, ErrTruncated
	}
	v := r.buf[r.valStart:end]
	r.pos = end
	r.pending = false
	return v, nil
}

// Uint8 decodes an INTEGER that fits in one unsigned byte.
func (r *Reader) Uint8() (uint8, error) {
	v, err := r.primitive(TagInteger)
	if err != nil {
		return 0, err
	}
	switch {
	case len(v) == 1 && v[0]&0x80 == 0:
		return v[0], nil
	case len(v) == 2 && v[0] == 0 && v[1]&0x80 != 0:
		return v[1], nil
	case len(v) == 0:
		return 0, fmt.Errorf("%w: empty integer", ErrMalformed)
	case v[0]&0x80 != 0:
		return 0, fmt.Errorf("%w: negative integer", ErrMalformed)
	default:
		return 0, fmt.Errorf("%w: integer does not fit in a byte", ErrMalformed)
	}
}

// BigEndianUnsigned decodes a non-negative INTEGER and returns its magnitude
// without the sign byte.
func (r *Reader) BigEndianUnsigned() ([]byte, error) {
	v, err := r.primitive(TagInteger)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: empty integer", ErrMalformed)
	}
	if v[0]&0x80 != 0 {
		return nil, fmt.Errorf("%w: negative integer", ErrMalformed)
	}
	if len(v) > 1 && v[0] == 0 {
		if v[1]&0x80 == 0 {
			return nil, fmt.Errorf("%w: non-minimal integer", ErrMalformed)
		}
		v = v[1:]
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *Reader) ObjectIdentifier() (ObjectIdentifier, error) {
	v, err := r.primitive(TagObjectIdentifier)
	if err != nil {
		return ObjectIdentifier{}, err
	}
	return DecodeObjectIdentifier(v)
}

func (r *Reader) Null() error {
	v, err := r.primitive(TagNull)
	if err != nil {
		return err
	}
	if len(v) != 0 {
		return fmt.Errorf("%w: NULL with %d content bytes", ErrMalformed, len(v))
	}
	return nil
}

// BitString returns the payload of a BIT STRING whose unused-bits byte must
// equal unusedBits.
func (r *Reader) BitString(unusedBits uint8) ([]byte, error) {
	v, err := r.primitive(TagBitString)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: empty BIT STRING", ErrMalformed)
	}
	if v[0] != unusedBits {
		return nil, fmt.Errorf("%w: %d unused bits, want %d", ErrMalformed, v[0], unusedBits)
	}
	if v[0] > 7 || (len(v) == 1 && v[0] != 0) {
		return nil, fmt.Errorf("%w: invalid unused bits", ErrMalformed)
	}
	return v[1:], nil
}

func (r *Reader) OctetString() ([]byte, error) {
	return r.primitive(TagOctetString)
}
