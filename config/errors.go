package config

import (
	"fmt"
	"strings"
)

// MissingKeysError lists every required secret absent at startup.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("missing API keys: %s", strings.Join(e.Keys, ", "))
}
