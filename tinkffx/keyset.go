package tinkffx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	tinkpb "github.com/google/tink/go/proto/tink_go_proto"
	"github.com/google/tink/go/subtle/random"
	"golang.org/x/crypto/pbkdf2"
)

// MinPassphraseIterations is the lowest PBKDF2 iteration count NewKeysetHandleFromPassphrase accepts.
const MinPassphraseIterations = 10000

// NewKeysetHandleFromKey wraps a raw 16, 24 or 32-byte AES key in a single-key cleartext
// keyset whose primary entry is an FFX key.
func NewKeysetHandleFromKey(key []byte) (*keyset.Handle, error) {
	if err := validateKeySize(len(key)); err != nil {
		return nil, err
	}

	keyID := random.GetRandomUint32()
	ks := &tinkpb.Keyset{
		PrimaryKeyId: keyID,
		Key: []*tinkpb.Keyset_Key{{
			KeyData: &tinkpb.KeyData{
				TypeUrl:         FFXKeyTypeURL,
				Value:           append([]byte(nil), key...),
				KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
			},
			KeyId:            keyID,
			Status:           tinkpb.KeyStatusType_ENABLED,
			OutputPrefixType: tinkpb.OutputPrefixType_RAW,
		}},
	}

	handle, err := insecurecleartextkeyset.Read(&keyset.MemReaderWriter{Keyset: ks})
	if err != nil {
		return nil, fmt.Errorf("failed to create keyset handle: %w", err)
	}
	return handle, nil
}

// NewKeysetHandleFromHex is NewKeysetHandleFromKey for a hex-encoded key.
func NewKeysetHandleFromHex(keyHex string) (*keyset.Handle, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	return NewKeysetHandleFromKey(key)
}

// NewKeysetHandleFromPassphrase derives an AES-128 key from passphrase with
// PBKDF2-HMAC-SHA256 and wraps it in a keyset. The same passphrase, salt and
// iteration count always give the same key.
func NewKeysetHandleFromPassphrase(passphrase, salt []byte, iterations int) (*keyset.Handle, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	if len(salt) < 8 {
		return nil, fmt.Errorf("salt must be at least 8 bytes, got %d", len(salt))
	}
	if iterations < MinPassphraseIterations {
		return nil, fmt.Errorf("iterations must be at least %d, got %d", MinPassphraseIterations, iterations)
	}

	key := pbkdf2.Key(passphrase, salt, iterations, DefaultKeySize, sha256.New)
	return NewKeysetHandleFromKey(key)
}

// WriteKeyset writes handle to w as cleartext JSON. The output contains the raw key;
// protect it accordingly.
func WriteKeyset(handle *keyset.Handle, w io.Writer) error {
	if handle == nil {
		return fmt.Errorf("keyset handle cannot be nil")
	}
	if err := insecurecleartextkeyset.Write(handle, keyset.NewJSONWriter(w)); err != nil {
		return fmt.Errorf("failed to write keyset: %w", err)
	}
	return nil
}

// ReadKeyset reads a cleartext JSON keyset written by WriteKeyset.
func ReadKeyset(r io.Reader) (*keyset.Handle, error) {
	handle, err := insecurecleartextkeyset.Read(keyset.NewJSONReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read keyset: %w", err)
	}
	return handle, nil
}
