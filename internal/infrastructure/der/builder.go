package der

import "fmt"

type frame struct {
	tag Tag
	buf []byte
}

// Builder encodes DER. Constructed elements are opened with Begin and closed
// with End; everything appended in between becomes their content.
type Builder struct {
	root  []byte
	stack []frame
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) write(p ...byte) {
	if n := len(b.stack); n > 0 {
		b.stack[n-1].buf = append(b.stack[n-1].buf, p...)
		return
	}
	b.root = append(b.root, p...)
}

func (b *Builder) appendElement(tag Tag, content []byte) {
	b.write(byte(tag))
	b.write(encodeLength(len(content))...)
	b.write(content...)
}

// encodeLength returns the definite-form length octets for n.
func encodeLength(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}
	var be []byte
	for v := n; v > 0; v >>= 8 {
		be = append([]byte{byte(v)}, be...)
	}
	return append([]byte{0x80 | byte(len(be))}, be...)
}

// Begin opens a constructed element.
func (b *Builder) Begin(tag Tag) {
	if !tag.Constructed() {
		panic(fmt.Sprintf("der: Begin with primitive tag %s", tag))
	}
	b.stack = append(b.stack, frame{tag: tag})
}

// End closes the innermost element opened by Begin.
func (b *Builder) End() {
	n := len(b.stack)
	if n == 0 {
		panic("der: End without Begin")
	}
	top := b.stack[n-1]
	b.stack = b.stack[:n-1]
	b.appendElement(top.tag, top.buf)
}

func (b *Builder) AppendIntegerFromUint8(v uint8) {
	b.AppendIntegerFromBigEndian([]byte{v}, false)
}

// AppendIntegerFromBigEndian appends an INTEGER in minimal form. When signed
// is false the input is a magnitude and gets a 0x00 prefix if its high bit is
// set; when true it is already two's complement.
func (b *Builder) AppendIntegerFromBigEndian(v []byte, signed bool) {
	if len(v) == 0 {
		v = []byte{0}
	}
	i := 0
	if signed {
		for i < len(v)-1 {
			if v[i] == 0x00 && v[i+1]&0x80 == 0 || v[i] == 0xff && v[i+1]&0x80 != 0 {
				i++
				continue
			}
			break
		}
		b.appendElement(TagInteger, v[i:])
		return
	}
	for i < len(v)-1 && v[i] == 0 {
		i++
	}
	v = v[i:]
	if v[0]&0x80 != 0 {
		content := make([]byte, 0, len(v)+1)
		content = append(content, 0x00)
		content = append(content, v...)
		b.appendElement(TagInteger, content)
		return
	}
	b.appendElement(TagInteger, v)
}

// AppendObjectIdentifier panics if oid cannot be encoded.
func (b *Builder) AppendObjectIdentifier(oid ObjectIdentifier) {
	content, err := oid.Bytes()
	if err != nil {
		panic(err)
	}
	b.appendElement(TagObjectIdentifier, content)
}

func (b *Builder) AppendNull() {
	b.appendElement(TagNull, nil)
}

func (b *Builder) AppendBitString(v []byte, unusedBits uint8) {
	content := make([]byte, 0, len(v)+1)
	content = append(content, unusedBits)
	content = append(content, v...)
	b.appendElement(TagBitString, content)
}

func (b *Builder) AppendOctetString(v []byte) {
	b.appendElement(TagOctetString, v)
}

// AppendRaw splices an already encoded element.
func (b *Builder) AppendRaw(encoded []byte) {
	b.write(encoded...)
}

// Build returns the encoded bytes. It panics if a Begin is still open.
func (b *Builder) Build() []byte {
	if len(b.stack) != 0 {
		panic(fmt.Sprintf("der: Build with %d unclosed element(s)", len(b.stack)))
	}
	out := make([]byte, len(b.root))
	copy(out, b.root)
	return out
}
