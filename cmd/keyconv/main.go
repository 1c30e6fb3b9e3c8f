package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ikedadada/go-josekey/internal/infrastructure/util"
	"ikedadada/go-josekey/internal/usecase"
)

func main() {
	in := flag.String("in", "", "input key file")
	from := flag.String("from", "pem", "input format: pem, der or jwk")
	to := flag.String("to", "jwk", "output format: pem, der, jwk, raw or traditional")
	public := flag.Bool("public", false, "emit the public key only")
	publicIn := flag.Bool("public-in", false, "the input is a public key")
	alg := flag.String("alg", "", "override the JWK alg member")
	kid := flag.String("kid", "", "override the JWK kid member")
	out := flag.String("out", "", "output file (stdout if empty)")
	flag.Parse()

	if err := util.ValidateRequired(*in, "in"); err != nil {
		log.Fatal(err)
	}
	b, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal(err)
	}

	uc := usecase.NewConvertKeyUseCase()
	res, err := uc.Handle(usecase.ConvertKeyInput{
		Data:      b,
		From:      *from,
		To:        *to,
		Public:    *public,
		PublicIn:  *publicIn,
		Algorithm: *alg,
		KeyID:     *kid,
	})
	if err != nil {
		log.Fatal(err)
	}

	if *out == "" {
		os.Stdout.Write(res.Data)
		return
	}
	perm := os.FileMode(0600)
	if *public || *publicIn {
		perm = 0644
	}
	if err := os.WriteFile(*out, res.Data, perm); err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stderr, "converted", *in, "to", *out)
}
