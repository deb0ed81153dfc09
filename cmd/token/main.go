// Command token prints a signed bearer token for the link API.
//
//	token -id 1 [-admin] [-ttl 1h]
//
// The signing secret and issuer come from AUTH_JWT_SECRET and AUTH_JWT_ISSUER.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sundayezeilo/linkstore/internal/app"
	"github.com/sundayezeilo/linkstore/internal/auth"
	"github.com/sundayezeilo/linkstore/internal/config"
)

func main() {
	if err := app.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	id := fs.Int64("id", 0, "principal id (required, positive)")
	admin := fs.Bool("admin", false, "grant administrator rights")
	ttl := fs.Duration("ttl", 0, "token lifetime (defaults to AUTH_TOKEN_TTL)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		fs.SetOutput(out)
		fs.PrintDefaults()
		return errors.New("-id must be a positive integer")
	}

	cfg, err := config.LoadAuth()
	if err != nil {
		return err
	}

	tm, err := auth.NewTokenManager(auth.TokenConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
	})
	if err != nil {
		return err
	}

	lifetime := cfg.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := tm.Issue(auth.Principal{ID: *id, IsAdmin: *admin}, lifetime)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	_, err = fmt.Fprintln(out, token)
	return err
}

