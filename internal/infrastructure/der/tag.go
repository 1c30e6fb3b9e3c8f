package der

import (
	"fmt"

	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// Tag identifies one of the ASN.1 universal types the codec understands.
type Tag uint8

const (
	// TagNone is returned by Reader.Next at end of input.
	TagNone             Tag = 0
	TagBoolean          Tag = Tag(cbasn1.BOOLEAN)
	TagInteger          Tag = Tag(cbasn1.INTEGER)
	TagBitString        Tag = Tag(cbasn1.BIT_STRING)
	TagOctetString      Tag = Tag(cbasn1.OCTET_STRING)
	TagNull             Tag = Tag(cbasn1.NULL)
	TagObjectIdentifier Tag = Tag(cbasn1.OBJECT_IDENTIFIER)
	TagUTF8String       Tag = Tag(cbasn1.UTF8String)
	TagPrintableString  Tag = Tag(cbasn1.PrintableString)
	TagSequence         Tag = Tag(cbasn1.SEQUENCE)
	TagSet              Tag = Tag(cbasn1.SET)
)

var tagNames = map[Tag]string{
	TagBoolean:          "BOOLEAN",
	TagInteger:          "INTEGER",
	TagBitString:        "BIT STRING",
	TagOctetString:      "OCTET STRING",
	TagNull:             "NULL",
	TagObjectIdentifier: "OBJECT IDENTIFIER",
	TagUTF8String:       "UTF8String",
	TagPrintableString:  "PrintableString",
	TagSequence:         "SEQUENCE",
	TagSet:              "SET",
}

// tagFromByte maps an identifier octet to a Tag. Unknown identifiers are rejected.
func tagFromByte(b byte) (Tag, bool) {
	t := Tag(b)
	_, ok := tagNames[t]
	return t, ok
}

// Constructed reports whether values of this type contain nested elements.
func (t Tag) Constructed() bool {
	return byte(t)&0x20 != 0
}

func (t Tag) String() string {
	if t == TagNone {
		return "none"
	}
	if n, ok := tagNames[t]; ok {
		return n
	}
	return fmt.Sprintf("tag(0x%02x)", byte(t))
}
