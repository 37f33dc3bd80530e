// Command hashpw prints a bcrypt hash for ADMIN_PASSWORD_HASH.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/server/auth"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	hash, err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

func run() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	password = bytes.TrimSpace(password)
	if len(password) == 0 {
		return "", errors.New("password must not be empty")
	}
	return auth.HashPassword(string(password), bcrypt.DefaultCost)
}
