package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	repoif "ikedadada/go-josekey/internal/domain/repository"
	"ikedadada/go-josekey/internal/infrastructure/repository"
	"ikedadada/go-josekey/internal/infrastructure/util"
	"ikedadada/go-josekey/internal/usecase"
)

func main() {
	from := flag.String("from", "pem", "input format: pem, der or jwk")
	publicIn := flag.Bool("public-in", false, "the inputs are public keys")
	alg := flag.String("alg", "", "alg for keys that have none")
	merge := flag.String("merge", "", "existing JWK Set to add the keys to")
	out := flag.String("out", "", "output file (stdout if empty)")
	flag.Parse()

	if err := util.ValidateOneOf(*from, usecase.InputFormats, "from"); err != nil {
		log.Fatal(err)
	}
	if flag.NArg() == 0 && *merge == "" {
		log.Fatal("usage: jwks [flags] key-file...")
	}

	repo, err := loadRepository(*merge)
	if err != nil {
		log.Fatal(err)
	}

	in := usecase.PublishKeySetInput{Algorithm: *alg}
	for _, path := range flag.Args() {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		in.Sources = append(in.Sources, usecase.KeySource{Name: path, Data: b, Format: *from, IsPublic: *publicIn})
	}

	uc := usecase.NewPublishKeySetUseCase(repo)
	res, err := uc.Handle(in)
	if err != nil {
		log.Fatal(err)
	}

	if *out == "" {
		os.Stdout.Write(res.Document)
		return
	}
	if err := os.WriteFile(*out, res.Document, 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stderr, "published", len(res.KeyIDs), "keys to", *out)
}

// loadRepository returns an empty key set, or the keys of the JWK Set at path.
func loadRepository(path string) (repoif.KeySetRepository, error) {
	if path == "" {
		return repository.NewKeySetRepository(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return repository.NewKeySetRepositoryFromJWKS(b)
}
