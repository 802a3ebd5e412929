package tinkffx

import (
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	tinkpb "github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vdparikh/ffxcodec"
	"github.com/vdparikh/ffxcodec/subtle"
)

// New creates an FFX cipher from a Tink keyset handle.
// This is the main entry point for users following Tink's pattern.
//
// Example:
//
//	handle, err := keyset.NewHandle(tinkffx.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	cipher, err := tinkffx.New(handle, []byte("tweak"), subtle.Params{Length: 10, Radix: 10})
//	if err != nil {
//	    return err
//	}
//	ciphertext, err := cipher.Encrypt("0123456789")
func New(handle *keyset.Handle, tweak []byte, params subtle.Params) (ffxcodec.Cipher, error) {
	key, err := primaryKey(handle)
	if err != nil {
		return nil, err
	}

	ffx, err := subtle.NewFFX(key, tweak, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create FFX instance: %w", err)
	}
	return ffx, nil
}

// NewCodec creates a Codec with aSize and bSize bit fields that encrypts with the
// primary key of handle.
func NewCodec(handle *keyset.Handle, aSize, bSize int, tweak []byte) (*ffxcodec.Codec, error) {
	codec, err := ffxcodec.New(aSize, bSize)
	if err != nil {
		return nil, err
	}

	cipher, err := New(handle, tweak, subtle.Params{Length: codec.BitLength(), Radix: 2})
	if err != nil {
		return nil, err
	}
	return codec.WithEncryption(cipher), nil
}

// primaryKey extracts the raw AES key of the primary entry of handle.
// Only cleartext symmetric FFX keys are supported.
func primaryKey(handle *keyset.Handle) ([]byte, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	ks := insecurecleartextkeyset.KeysetMaterial(handle)
	if ks == nil || len(ks.Key) == 0 {
		return nil, fmt.Errorf("keyset contains no keys")
	}

	for _, key := range ks.Key {
		if key.KeyId != ks.PrimaryKeyId {
			continue
		}
		if key.Status != tinkpb.KeyStatusType_ENABLED {
			return nil, fmt.Errorf("primary key %d is not enabled", key.KeyId)
		}

		keyData := key.KeyData
		if keyData == nil {
			return nil, fmt.Errorf("primary key %d has no key data", key.KeyId)
		}
		if keyData.TypeUrl != FFXKeyTypeURL {
			return nil, fmt.Errorf("unsupported key type %q, want %q", keyData.TypeUrl, FFXKeyTypeURL)
		}
		if keyData.KeyMaterialType != tinkpb.KeyData_SYMMETRIC {
			return nil, fmt.Errorf("unsupported key material type %v", keyData.KeyMaterialType)
		}
		return keyData.Value, nil
	}

	return nil, fmt.Errorf("primary key %d not found in keyset", ks.PrimaryKeyId)
}
