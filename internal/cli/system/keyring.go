package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/keyring"
)

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")

	_, err := keyring.GetToken()
	switch {
	case err == nil:
		fmt.Println("✓ Access token is stored in keyring")
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Println("ℹ No access token stored in keyring")
	default:
		return fmt.Errorf("failed to read access token: %w", err)
	}
	return nil
}

// KeyringClearCmd removes the stored access token without calling the backend
type KeyringClearCmd struct{}

func (cmd *KeyringClearCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteToken()
	if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No access token stored in keyring")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("✓ Access token deleted from OS keyring")
	return nil
}
