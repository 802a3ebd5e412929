package tinkffx

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the FFX KeyManager to Tink's registry so that keyset.NewHandle accepts
// KeyTemplate. It is safe to call multiple times; only the first call registers.
func Register() error {
	registerOnce.Do(func() {
		// Tink has no lookup that does not error, so a successful GetKeyManager
		// means someone else already registered the type URL.
		if _, err := registry.GetKeyManager(FFXKeyTypeURL); err == nil {
			return
		}
		registerErr = registry.RegisterKeyManager(NewKeyManager())
	})
	return registerErr
}
