package transmission

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/poolpOrg/toyrsa/codec"
	"github.com/poolpOrg/toyrsa/compression"
	"github.com/poolpOrg/toyrsa/encryption/keypair"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestTransmission(t *testing.T) (*Transmission, keypair.PrivateKey) {
	t.Helper()
	pub, priv := keypair.Generate(11, 13)
	return New(pub, codec.Encode("Mensagem Super Secreta", pub)), priv
}

func TestNew(t *testing.T) {
	tr, _ := newTestTransmission(t)
	if tr.ID == uuid.Nil {
		t.Error("Expected non-nil transmission identifier")
	}
	if tr.Timestamp.IsZero() {
		t.Error("Expected transmission timestamp to be set")
	}
	if len(tr.Ciphertext) != len("Mensagem Super Secreta") {
		t.Errorf("Expected %d ciphertexts, got %d", len("Mensagem Super Secreta"), len(tr.Ciphertext))
	}
}

func TestSealOpen(t *testing.T) {
	tr, priv := newTestTransmission(t)

	for _, method := range compression.Algorithms() {
		for _, algorithm := range []string{"sha256", "blake2b"} {
			data, err := Seal(tr, method, algorithm)
			if err != nil {
				t.Fatalf("Seal(%s, %s) failed: %v", method, algorithm, err)
			}

			opened, err := Open(data)
			if err != nil {
				t.Fatalf("Open(%s, %s) failed: %v", method, algorithm, err)
			}

			if opened.ID != tr.ID {
				t.Errorf("Expected identifier %s, got %s", tr.ID, opened.ID)
			}
			if !opened.Timestamp.Equal(tr.Timestamp) {
				t.Errorf("Expected timestamp %s, got %s", tr.Timestamp, opened.Timestamp)
			}
			if opened.PublicKey != tr.PublicKey {
				t.Errorf("Expected public key %v, got %v", tr.PublicKey, opened.PublicKey)
			}
			if decoded := codec.Decode(opened.Ciphertext, priv); decoded != "Mensagem Super Secreta" {
				t.Errorf("Expected %q, got %q", "Mensagem Super Secreta", decoded)
			}
		}
	}
}

func TestSealUnknownMethods(t *testing.T) {
	tr, _ := newTestTransmission(t)

	if _, err := Seal(tr, "zstd", "sha256"); err == nil {
		t.Error("Expected error for unknown compression method")
	}
	if _, err := Seal(tr, "lz4", "md5"); !errors.Is(err, ErrUnknownHashing) {
		t.Errorf("Expected ErrUnknownHashing, got %v", err)
	}
}

func tamper(t *testing.T, data []byte, fn func(*envelope)) []byte {
	t.Helper()
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		t.Fatalf("Failed to unmarshal envelope: %v", err)
	}
	fn(&env)
	tampered, err := msgpack.Marshal(&env)
	if err != nil {
		t.Fatalf("Failed to marshal envelope: %v", err)
	}
	return tampered
}

func TestOpenCorrupted(t *testing.T) {
	tr, _ := newTestTransmission(t)
	data, err := Seal(tr, "gzip", "sha256")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	corrupted := tamper(t, data, func(env *envelope) {
		env.Payload[len(env.Payload)/2] ^= 0xff
	})
	if _, err := Open(corrupted); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got %v", err)
	}

	future := tamper(t, data, func(env *envelope) {
		env.Version = VERSION + 1
	})
	if _, err := Open(future); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Expected ErrUnsupportedVersion, got %v", err)
	}

	unknown := tamper(t, data, func(env *envelope) {
		env.Hashing = "md5"
	})
	if _, err := Open(unknown); !errors.Is(err, ErrUnknownHashing) {
		t.Errorf("Expected ErrUnknownHashing, got %v", err)
	}

	if _, err := Open([]byte("garbage")); err == nil {
		t.Error("Expected error when opening garbage")
	}
}
