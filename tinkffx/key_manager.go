// Package tinkffx provides Tink integration for the AES-FFX cipher.
// This file contains the KeyManager implementation that registers FFX keys with Tink's registry.
package tinkffx

import (
	"fmt"

	"github.com/google/tink/go/core/registry"
	tinkpb "github.com/google/tink/go/proto/tink_go_proto"
	"github.com/google/tink/go/subtle/random"
	"github.com/vdparikh/ffxcodec/subtle"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// FFXKeyTypeURL is the type URL for AES-FFX keys in Tink's registry.
	FFXKeyTypeURL = "type.googleapis.com/ffxcodec.AesFfxKey"

	// DefaultKeySize is the AES-128 key size used by KeyTemplate.
	DefaultKeySize = 16
)

// DefaultParams is the domain of primitives built by KeyManager.Primitive:
// 64-digit binary strings, matching a 64-bit Codec.
var DefaultParams = subtle.Params{Length: 64, Radix: 2, Rounds: subtle.DefaultRounds}

// KeyManager implements registry.KeyManager for FFX keys.
// KeyData values hold the raw AES key bytes.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new FFX key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: FFXKeyTypeURL,
	}
}

// Primitive creates an FFX primitive from the given serialized key. The primitive uses an
// empty tweak and DefaultParams; use New for any other tweak or domain.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	if err := validateKeySize(len(serializedKey)); err != nil {
		return nil, err
	}

	ffx, err := subtle.NewFFX(serializedKey, nil, DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create FFX: %w", err)
	}
	return ffx, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey generates a new key according to the given key template.
// FFX has no dedicated key proto, so the key bytes come back in a BytesValue.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	key, err := generateKey(serializedKeyTemplate)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(key), nil
}

// NewKeyData creates a new KeyData from the given key template.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tinkpb.KeyData, error) {
	key, err := generateKey(serializedKeyTemplate)
	if err != nil {
		return nil, err
	}
	return &tinkpb.KeyData{
		TypeUrl:         km.typeURL,
		Value:           key,
		KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
	}, nil
}

// generateKey reads the key size from a template value (a single byte) and
// returns that many random bytes.
func generateKey(serializedKeyTemplate []byte) ([]byte, error) {
	keySize := DefaultKeySize
	if len(serializedKeyTemplate) > 0 {
		keySize = int(serializedKeyTemplate[0])
	}
	if err := validateKeySize(keySize); err != nil {
		return nil, fmt.Errorf("invalid key template: %w", err)
	}

	return random.GetRandomBytes(uint32(keySize)), nil
}

func validateKeySize(n int) error {
	if n != 16 && n != 24 && n != 32 {
		return fmt.Errorf("%w: got %d bytes", subtle.ErrInvalidKey, n)
	}
	return nil
}

// Verify that KeyManager implements registry.KeyManager
var _ registry.KeyManager = (*KeyManager)(nil)

// KeyTemplate creates a key template for AES-FFX keys.
// This allows users to generate keys with a single line:
//
//	handle, err := keyset.NewHandle(tinkffx.KeyTemplate())
//
// The template generates AES-128 keys, which is what the FFX construction is defined over.
func KeyTemplate() *tinkpb.KeyTemplate {
	return KeyTemplateAES128()
}

// KeyTemplateAES128 creates a key template for AES-FFX with a 16-byte key.
func KeyTemplateAES128() *tinkpb.KeyTemplate {
	return keyTemplate(16)
}

// KeyTemplateAES192 creates a key template for AES-FFX with a 24-byte key.
func KeyTemplateAES192() *tinkpb.KeyTemplate {
	return keyTemplate(24)
}

// KeyTemplateAES256 creates a key template for AES-FFX with a 32-byte key.
func KeyTemplateAES256() *tinkpb.KeyTemplate {
	return keyTemplate(32)
}

func keyTemplate(keySize byte) *tinkpb.KeyTemplate {
	return &tinkpb.KeyTemplate{
		TypeUrl:          FFXKeyTypeURL,
		Value:            []byte{keySize},
		OutputPrefixType: tinkpb.OutputPrefixType_RAW,
	}
}
