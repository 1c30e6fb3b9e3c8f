package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	vo "ikedadada/go-josekey/internal/domain/value_object"
)

func TestJwksCommand(t *testing.T) {
	dir := t.TempDir()
	var pubs []*vo.RSAPublicKey
	var paths []string
	for i, name := range []string{"a.pem", "b.pem"} {
		kp, err := vo.GenerateRSAKeyPair(1024)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if i == 1 {
			kp.SetKeyID("b")
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, kp.ToPEMPrivateKey(), 0600); err != nil {
			t.Fatalf("write key: %v", err)
		}
		pubs = append(pubs, kp.ToPublicKey())
		paths = append(paths, path)
	}
	first := filepath.Join(dir, "first.json")

	cmd := exec.Command("go", "run", "./cmd/jwks", "-alg", "RS256", "-out", first, paths[0])
	cmd.Dir = "../.."
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("run command: %v, output: %s", err, b)
	}

	cmd = exec.Command("go", "run", "./cmd/jwks", "-merge", first, paths[1])
	cmd.Dir = "../.."
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("run command: %v", err)
	}

	set, err := vo.JwkSetFromBytes(stdout.Bytes())
	if err != nil {
		t.Fatalf("parse set: %v", err)
	}
	keys := set.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if keys[0].KeyID() != pubs[0].Thumbprint() || keys[0].Algorithm() != "RS256" {
		t.Errorf("first key kid/alg = %q/%q", keys[0].KeyID(), keys[0].Algorithm())
	}
	for i, jwk := range keys {
		pub, err := vo.RSAPublicKeyFromJWK(jwk)
		if err != nil {
			t.Fatalf("key %d: %v", i, err)
		}
		if !pub.Equal(pubs[i]) {
			t.Errorf("key %d differs", i)
		}
	}
}

func TestJwksCommand_NoInput(t *testing.T) {
	cmd := exec.Command("go", "run", "./cmd/jwks")
	cmd.Dir = "../.."
	if err := cmd.Run(); err == nil {
		t.Fatal("expected failure without keys")
	}
}
