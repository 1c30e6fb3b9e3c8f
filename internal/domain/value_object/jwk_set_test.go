package value_object_test

import (
	"errors"
	"strings"
	"testing"

	vo "ikedadada/go-josekey/internal/domain/value_object"
)

func TestJwkSet_RoundTrip(t *testing.T) {
	a := vo.NewJwk("RSA")
	a.SetKeyID("a")
	b := vo.NewJwk("RSA")
	b.SetKeyID("b")

	set := vo.NewJwkSet(a, b)
	want := `{"keys":[{"kid":"a","kty":"RSA"},{"kid":"b","kty":"RSA"}]}`
	if got := string(set.Bytes()); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	parsed, err := vo.JwkSetFromBytes(set.Bytes())
	if err != nil {
		t.Fatalf("JwkSetFromBytes: %v", err)
	}
	if parsed.Len() != 2 || parsed.Keys()[1].KeyID() != "b" {
		t.Errorf("unexpected keys: %s", parsed.Bytes())
	}

	if got := string(vo.NewJwkSet().Bytes()); got != `{"keys":[]}` {
		t.Errorf("empty set = %s", got)
	}
}

func TestJwkSetFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"not json", `keys`, ""},
		{"missing keys", `{}`, "A parameter keys is required."},
		{"keys not an array", `{"keys":{}}`, ""},
		{"entry without kty", `{"keys":[{"kty":"RSA"},{"n":"AQAB"}]}`, "keys[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vo.JwkSetFromBytes([]byte(tt.input))
			if !errors.Is(err, vo.ErrInvalidJwk) {
				t.Fatalf("expected ErrInvalidJwk, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
		})
	}
}
