package value_object

import (
	"encoding/json"
	"errors"
	"fmt"

	"ikedadada/go-josekey/internal/infrastructure/util"
)

var ErrInvalidJwk = errors.New("invalid JWK")

// Jwk is a JSON Web Key (RFC 7517) held as a map of JSON values.
type Jwk struct {
	params map[string]any
}

// NewJwk creates an empty JWK of the given key type
func NewJwk(kty string) *Jwk {
	return &Jwk{params: map[string]any{"kty": kty}}
}

// JwkFromBytes parses a JSON encoded JWK
func JwkFromBytes(b []byte) (*Jwk, error) {
	jwk := &Jwk{}
	if err := jwk.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return jwk, nil
}

func (j *Jwk) UnmarshalJSON(b []byte) error {
	var params map[string]any
	if err := json.Unmarshal(b, &params); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJwk, err)
	}
	if params == nil {
		return fmt.Errorf("%w: not a JSON object", ErrInvalidJwk)
	}
	switch v := params["kty"].(type) {
	case string:
	case nil:
		return fmt.Errorf("%w: %w", ErrInvalidJwk, util.ValidationError{Field: "kty", Message: "is required"})
	default:
		return fmt.Errorf("%w: %w (got %T)", ErrInvalidJwk, util.ValidationError{Field: "kty", Message: "must be a string"}, v)
	}
	j.params = params
	return nil
}

func (j *Jwk) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.params)
}

// Bytes returns the JSON encoding of the key. Members are sorted by name.
func (j *Jwk) Bytes() []byte {
	b, err := json.Marshal(j.params)
	if err != nil {
		// params only ever hold values decoded from or accepted as JSON
		panic(err)
	}
	return b
}

func (j *Jwk) String() string {
	return string(j.Bytes())
}

func (j *Jwk) KeyType() string {
	kty, _ := j.params["kty"].(string)
	return kty
}

func (j *Jwk) Algorithm() string {
	alg, _ := j.params["alg"].(string)
	return alg
}

// SetAlgorithm sets alg; an empty value removes it.
func (j *Jwk) SetAlgorithm(alg string) {
	j.setString("alg", alg)
}

func (j *Jwk) KeyID() string {
	kid, _ := j.params["kid"].(string)
	return kid
}

// SetKeyID sets kid; an empty value removes it.
func (j *Jwk) SetKeyID(kid string) {
	j.setString("kid", kid)
}

func (j *Jwk) setString(name, value string) {
	if value == "" {
		delete(j.params, name)
		return
	}
	j.params[name] = value
}

// Parameter returns the raw JSON value of a member.
func (j *Jwk) Parameter(name string) (any, bool) {
	v, ok := j.params[name]
	return v, ok
}

// SetParameter sets a member; a nil value removes it.
func (j *Jwk) SetParameter(name string, value any) error {
	if value == nil {
		if name == "kty" {
			return util.ValidationError{Field: "kty", Message: "is required"}
		}
		delete(j.params, name)
		return nil
	}
	if _, ok := value.(string); name == "kty" && !ok {
		return util.ValidationError{Field: "kty", Message: "must be a string"}
	}
	j.params[name] = value
	return nil
}

// StringParameter returns a member that must be present and a JSON string.
func (j *Jwk) StringParameter(name string) (string, error) {
	v, ok := j.params[name]
	if !ok || v == nil {
		return "", util.ValidationError{Field: name, Message: "is required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", util.ValidationError{Field: name, Message: "must be a string"}
	}
	return s, nil
}

// Base64URLParameter returns the decoded bytes of a base64url string member.
func (j *Jwk) Base64URLParameter(name string) ([]byte, error) {
	s, err := j.StringParameter(name)
	if err != nil {
		return nil, err
	}
	b, err := util.DecodeBase64URL(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ValidationError{Field: name, Message: "must be base64url encoded"}, err)
	}
	return b, nil
}

// SetBase64URLParameter stores b as an unpadded base64url string.
func (j *Jwk) SetBase64URLParameter(name string, b []byte) {
	j.params[name] = util.EncodeBase64URL(b)
}
