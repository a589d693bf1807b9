package codec

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/poolpOrg/toyrsa/encryption/keypair"
)

func TestEncodeDecode(t *testing.T) {
	pub, priv := keypair.Generate(11, 13)

	encoded := Encode("AB", pub)
	if len(encoded) != 2 {
		t.Fatalf("Expected 2 ciphertexts, got %d", len(encoded))
	}
	for _, c := range encoded {
		if c >= pub.Modulus {
			t.Errorf("Ciphertext %d is not below the modulus %d", c, pub.Modulus)
		}
	}

	if decoded := Decode(encoded, priv); decoded != "AB" {
		t.Errorf("Expected %q, got %q", "AB", decoded)
	}
}

func TestEncodeDecodeASCII(t *testing.T) {
	pub, priv := keypair.Generate(11, 13)

	var sb strings.Builder
	for r := rune(0); r < 128; r++ {
		sb.WriteRune(r)
	}
	text := sb.String()

	if decoded := Decode(Encode(text, pub), priv); decoded != text {
		t.Errorf("Expected %q, got %q", text, decoded)
	}
}

func TestEncodeDecodeUnicode(t *testing.T) {
	// modulus above utf8.MaxRune
	pub, priv := keypair.Generate(1117, 1123)

	text := "Mensagem Super Secreta: ça marche, 東京 ✓"
	encoded := Encode(text, pub)
	if len(encoded) != utf8.RuneCountInString(text) {
		t.Fatalf("Expected one ciphertext per character, got %d for %d", len(encoded), utf8.RuneCountInString(text))
	}
	if decoded := Decode(encoded, priv); decoded != text {
		t.Errorf("Expected %q, got %q", text, decoded)
	}
}

func TestEncodeInvalidUTF8(t *testing.T) {
	pub, priv, err := keypair.GenerateBounded(1117, 1123)
	if err != nil {
		t.Fatalf("GenerateBounded failed: %v", err)
	}

	text := "a\xffb"
	encoded := Encode(text, pub)
	if len(encoded) != 3 {
		t.Fatalf("Expected 3 ciphertexts, got %d", len(encoded))
	}

	decoded := Decode(encoded, priv)
	if decoded != "a\uFFFDb" {
		t.Errorf("Expected %q, got %q", "a\uFFFDb", decoded)
	}
	if decoded == text {
		t.Error("Expected invalid UTF-8 not to round trip")
	}
}

func TestEncodeIsPerCharacter(t *testing.T) {
	pub, _ := keypair.Generate(11, 13)

	encoded := Encode("AAA", pub)
	if encoded[0] != encoded[1] || encoded[1] != encoded[2] {
		t.Errorf("Expected identical ciphertexts for identical characters, got %v", encoded)
	}
}

func TestEncodeDecodeEmpty(t *testing.T) {
	pub, priv := keypair.Generate(3, 7)

	encoded := Encode("", pub)
	if len(encoded) != 0 {
		t.Fatalf("Expected no ciphertext, got %v", encoded)
	}
	if decoded := Decode(encoded, priv); decoded != "" {
		t.Errorf("Expected empty string, got %q", decoded)
	}
}

func TestDecodeWithWrongKey(t *testing.T) {
	pub, _ := keypair.Generate(11, 13)
	_, wrong := keypair.Generate(3, 7)

	text := "REDACTED"
	decoded := Decode(Encode(text, pub), wrong)
	if decoded == text {
		t.Fatal("Expected garbage when decoding with a mismatched key")
	}
}

func TestEncodeAboveModulusWraps(t *testing.T) {
	// 'z' is 122, above N=21
	pub, priv := keypair.Generate(3, 7)

	decoded := Decode(Encode("z", pub), priv)
	if decoded == "z" {
		t.Fatal("Expected a character above the modulus not to survive the round trip")
	}
	if decoded != string(rune(122%21)) {
		t.Errorf("Expected %q, got %q", string(rune(122%21)), decoded)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	pub, priv := keypair.Generate(61, 53)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20)

	expected := Encode(text, pub)
	for _, workers := range []int{0, 1, 3, 8, 1000} {
		encoded, err := EncodeParallel(context.Background(), text, pub, workers)
		if err != nil {
			t.Fatalf("EncodeParallel with %d workers failed: %v", workers, err)
		}
		if len(encoded) != len(expected) {
			t.Fatalf("Expected %d ciphertexts, got %d", len(expected), len(encoded))
		}
		for i := range expected {
			if encoded[i] != expected[i] {
				t.Fatalf("workers=%d: ciphertext %d differs: expected %d, got %d", workers, i, expected[i], encoded[i])
			}
		}

		decoded, err := DecodeParallel(context.Background(), encoded, priv, workers)
		if err != nil {
			t.Fatalf("DecodeParallel with %d workers failed: %v", workers, err)
		}
		if decoded != text {
			t.Fatalf("workers=%d: expected %q, got %q", workers, text, decoded)
		}
	}
}

func TestParallelEmpty(t *testing.T) {
	pub, priv := keypair.Generate(3, 7)

	encoded, err := EncodeParallel(context.Background(), "", pub, 4)
	if err != nil {
		t.Fatalf("EncodeParallel failed: %v", err)
	}
	if len(encoded) != 0 {
		t.Fatalf("Expected no ciphertext, got %v", encoded)
	}

	decoded, err := DecodeParallel(context.Background(), nil, priv, 4)
	if err != nil {
		t.Fatalf("DecodeParallel failed: %v", err)
	}
	if decoded != "" {
		t.Errorf("Expected empty string, got %q", decoded)
	}
}

func TestParallelCanceled(t *testing.T) {
	pub, _ := keypair.Generate(11, 13)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := EncodeParallel(ctx, "canceled", pub, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
