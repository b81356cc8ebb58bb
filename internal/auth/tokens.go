package auth

import "github.com/presentos/present-cli/internal/credential"

// KeyringTokens is the production TokenStore backed by the system
// keyring.
type KeyringTokens struct{}

func (KeyringTokens) Get(key string) (string, error) { return credential.Get(key) }
func (KeyringTokens) Set(key, value string) error    { return credential.Set(key, value) }
func (KeyringTokens) Delete(key string) error        { return credential.Delete(key) }
