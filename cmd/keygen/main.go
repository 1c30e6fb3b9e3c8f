package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"

	vo "ikedadada/go-josekey/internal/domain/value_object"
	"ikedadada/go-josekey/internal/infrastructure/util"
)

var formats = []string{"pem", "der", "jwk"}

// encodeKeys returns the private and public encodings of kp in format.
func encodeKeys(kp *vo.RSAKeyPair, format string) ([]byte, []byte) {
	switch format {
	case "der":
		return kp.ToDERPrivateKey(), kp.ToDERPublicKey()
	case "jwk":
		return kp.ToJWKKeyPair().Bytes(), kp.ToJWKPublicKey().Bytes()
	default:
		return kp.ToPEMPrivateKey(), kp.ToPEMPublicKey()
	}
}

func main() {
	out := flag.String("out", "rsa_key.pem", "output private key file")
	bits := flag.Int("bits", defaultBits(), "RSA modulus size in bits")
	format := flag.String("format", "pem", "output format: pem, der or jwk")
	alg := flag.String("alg", "", "JWK alg member")
	kid := flag.String("kid", "", "JWK kid member")
	randomKid := flag.Bool("random-kid", false, "assign a random UUID as kid")
	flag.Parse()

	if err := util.ValidateOneOf(*format, formats, "format"); err != nil {
		log.Fatal(err)
	}
	if err := util.ValidatePositive(*bits, "bits"); err != nil {
		log.Fatal(err)
	}
	if *randomKid {
		if *kid != "" {
			log.Fatal("-kid and -random-kid are mutually exclusive")
		}
		*kid = uuid.NewString()
	}

	kp, err := vo.GenerateRSAKeyPair(*bits)
	if err != nil {
		log.Fatal(err)
	}
	kp.SetAlgorithm(*alg)
	kp.SetKeyID(*kid)

	priv, pub := encodeKeys(kp, *format)
	if err := os.WriteFile(*out, priv, 0600); err != nil {
		log.Fatal(err)
	}
	pubOut := *out + ".pub"
	if err := os.WriteFile(pubOut, pub, 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Println("generated", *out, "and", pubOut)
}

// defaultBits returns the key size derived from the KEYGEN_BITS environment
// variable or 2048 if unset/invalid.
func defaultBits() int {
	bits := 2048
	if v := os.Getenv("KEYGEN_BITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			bits = n
		}
	}
	return bits
}
