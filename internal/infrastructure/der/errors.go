package der

import "errors"

var (
	ErrMalformed      = errors.New("der: malformed encoding")
	ErrTruncated      = errors.New("der: truncated input")
	ErrUnexpectedTag  = errors.New("der: unexpected tag")
	ErrUnsupportedTag = errors.New("der: unsupported tag")
	ErrTooDeep        = errors.New("der: nesting too deep")
	ErrInvalidOID     = errors.New("der: invalid object identifier")
)
