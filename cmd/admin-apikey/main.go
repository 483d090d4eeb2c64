package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"tripcover.backend/pkg/crypto"
)

var (
	generateKey = func() (string, error) { return crypto.GenerateRandomToken(32) }
	hashKey     = crypto.HashKey
)

// runAdminAPIKey generates the admin decision key. The plaintext goes to
// the operator, the bcrypt hash goes into ADMIN_API_KEY_HASH.
func runAdminAPIKey(out io.Writer) error {
	key, err := generateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	hash, err := hashKey(key)
	if err != nil {
		return fmt.Errorf("failed to hash key: %w", err)
	}

	_, _ = fmt.Fprintln(out, "Admin API key (give to the operator, shown once):")
	_, _ = fmt.Fprintln(out, "  "+key)
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Config value for ADMIN_API_KEY_HASH:")
	_, _ = fmt.Fprintln(out, "  "+hash)
	return nil
}

func main() {
	if err := runAdminAPIKey(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
