package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"auction_backend/internal/feature/auth/domain/entity"
)

// readPassword is a test seam for term.ReadPassword on stdin.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

type userCreator interface {
	CreateUser(ctx context.Context, username, email, password string) (*entity.User, error)
}

func createUser(ctx context.Context, users userCreator, args []string, out io.Writer, read func() ([]byte, error)) error {
	fs := flag.NewFlagSet("createuser", flag.ContinueOnError)
	fs.SetOutput(out)
	username := fs.String("username", "", "login name (required)")
	email := fs.String("email", "", "optional e-mail address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("-username is required")
	}

	password, err := promptPassword(out, "Password: ", read)
	if err != nil {
		return err
	}
	again, err := promptPassword(out, "Password (again): ", read)
	if err != nil {
		return err
	}
	if !bytes.Equal(password, again) {
		return errors.New("passwords do not match")
	}

	user, err := users.CreateUser(ctx, *username, *email, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created user %q (id %d)\n", user.Username, user.ID)
	return nil
}

func promptPassword(out io.Writer, prompt string, read func() ([]byte, error)) ([]byte, error) {
	fmt.Fprint(out, prompt)
	pw, err := read()
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
