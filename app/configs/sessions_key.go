package configs

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
)

// GenerateAndPrintSessionKeys creates fresh SESSION_KEY and CSRF_KEY
// values and writes them to .env.new_keys for copying into .env.
// Regenerating invalidates existing sessions and CSRF tokens.
func GenerateAndPrintSessionKeys() error {
	sessionKey := securecookie.GenerateRandomKey(64)
	if sessionKey == nil {
		return fmt.Errorf("error: could not generate session key")
	}

	csrfKey := securecookie.GenerateRandomKey(32)
	if csrfKey == nil {
		return fmt.Errorf("error: could not generate CSRF key")
	}

	sessionKeyBase64 := base64.URLEncoding.EncodeToString(sessionKey)
	csrfKeyBase64 := base64.URLEncoding.EncodeToString(csrfKey)

	fmt.Println("\n================================================")
	fmt.Println("Generated keys:")
	fmt.Printf("SESSION_KEY=%s\n", sessionKeyBase64)
	fmt.Printf("CSRF_KEY=%s\n", csrfKeyBase64)
	fmt.Println("================================================")

	envFilePath := ".env.new_keys"
	file, err := os.Create(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", envFilePath, err)
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, "SESSION_KEY=%s\nCSRF_KEY=%s\n", sessionKeyBase64, csrfKeyBase64)
	if err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", envFilePath, err)
	}

	fmt.Printf("\n✅ Keys have been written to '%s'. Copy them into your .env file.\n", envFilePath)

	return nil
}
