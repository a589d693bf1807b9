package keypair

import (
	"errors"
	"testing"

	"github.com/poolpOrg/toyrsa/primes"
)

var smallPrimes = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61}

// TestGenerateVectors checks the known key pairs
func TestGenerateVectors(t *testing.T) {
	tests := []struct {
		p, q    uint64
		e, d, n uint64
	}{
		{11, 13, 7, 103, 143},
		{13, 11, 7, 103, 143},
		{3, 7, 5, 5, 21},
		{61, 53, 7, 1783, 3233},
	}

	for _, tt := range tests {
		pub, priv := Generate(tt.p, tt.q)
		if pub.Exponent != tt.e {
			t.Errorf("Generate(%d, %d): expected e=%d, got %d", tt.p, tt.q, tt.e, pub.Exponent)
		}
		if pub.Modulus != tt.n {
			t.Errorf("Generate(%d, %d): expected N=%d, got %d", tt.p, tt.q, tt.n, pub.Modulus)
		}
		if priv.Exponent != tt.d {
			t.Errorf("Generate(%d, %d): expected d=%d, got %d", tt.p, tt.q, tt.d, priv.Exponent)
		}
		if priv.Prime1 != tt.p || priv.Prime2 != tt.q {
			t.Errorf("Generate(%d, %d): private key holds (%d, %d)", tt.p, tt.q, priv.Prime1, priv.Prime2)
		}
		if priv.Modulus() != pub.Modulus {
			t.Errorf("Generate(%d, %d): private modulus %d does not match public modulus %d", tt.p, tt.q, priv.Modulus(), pub.Modulus)
		}
	}
}

// TestGenerateDeterministic checks that the same primes always give the same keys
func TestGenerateDeterministic(t *testing.T) {
	pub1, priv1 := Generate(47, 59)
	pub2, priv2 := Generate(47, 59)
	if pub1 != pub2 || priv1 != priv2 {
		t.Fatalf("Generate is not deterministic: %v/%v vs %v/%v", pub1, priv1, pub2, priv2)
	}
}

// TestGenerateSmallest checks that e and d are the smallest valid values
func TestGenerateSmallest(t *testing.T) {
	for _, p := range smallPrimes {
		for _, q := range smallPrimes {
			if p == q || (p-1)*(q-1) < 3 {
				continue
			}
			pub, priv := Generate(p, q)
			phi := priv.Totient()

			if primes.GCD(pub.Exponent, phi) != 1 {
				t.Fatalf("(%d, %d): e=%d is not coprime to %d", p, q, pub.Exponent, phi)
			}
			for e := uint64(2); e < pub.Exponent; e++ {
				if primes.GCD(e, phi) == 1 {
					t.Fatalf("(%d, %d): e=%d is not the smallest, %d is coprime to %d", p, q, pub.Exponent, e, phi)
				}
			}
			if (priv.Exponent*pub.Exponent)%phi != 1 {
				t.Fatalf("(%d, %d): d=%d is not an inverse of e=%d", p, q, priv.Exponent, pub.Exponent)
			}
			for d := uint64(2); d < priv.Exponent; d++ {
				if (d*pub.Exponent)%phi == 1 {
					t.Fatalf("(%d, %d): d=%d is not the smallest, %d also works", p, q, priv.Exponent, d)
				}
			}
			if pub.Exponent <= 1 || pub.Exponent >= phi {
				t.Fatalf("(%d, %d): e=%d out of (1, %d)", p, q, pub.Exponent, phi)
			}
		}
	}
}

// TestGenerateBoundedMatchesGenerate checks that the bounded search returns the same keys
func TestGenerateBoundedMatchesGenerate(t *testing.T) {
	for _, p := range smallPrimes {
		for _, q := range smallPrimes {
			if p == q || (p-1)*(q-1) < 3 {
				continue
			}
			pub, priv := Generate(p, q)
			bpub, bpriv, err := GenerateBounded(p, q)
			if err != nil {
				t.Fatalf("GenerateBounded(%d, %d) failed: %v", p, q, err)
			}
			if pub != bpub || priv != bpriv {
				t.Errorf("GenerateBounded(%d, %d) = %v/%v, expected %v/%v", p, q, bpub, bpriv, pub, priv)
			}
		}
	}
}

// TestGenerateBoundedDegenerate checks that degenerate primes are reported instead of looping
func TestGenerateBoundedDegenerate(t *testing.T) {
	for _, tt := range []struct{ p, q uint64 }{{2, 2}, {1, 13}, {13, 1}, {0, 7}} {
		if _, _, err := GenerateBounded(tt.p, tt.q); !errors.Is(err, ErrDegenerateTotient) {
			t.Errorf("GenerateBounded(%d, %d): expected ErrDegenerateTotient, got %v", tt.p, tt.q, err)
		}
	}

	// the only exponent coprime to 2 is above the totient
	if _, _, err := GenerateBounded(2, 3); !errors.Is(err, ErrNoExponent) {
		t.Errorf("GenerateBounded(2, 3): expected ErrNoExponent, got %v", err)
	}
}

func TestInverse(t *testing.T) {
	d, err := Inverse(7, 120)
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	if d != 103 {
		t.Errorf("Expected 103, got %d", d)
	}

	if _, err := Inverse(6, 120); !errors.Is(err, ErrNoInverse) {
		t.Errorf("Expected ErrNoInverse, got %v", err)
	}

	// e = 1 mod phi has 1 as its only inverse, which is out of range
	for _, tt := range []struct{ e, phi uint64 }{{121, 120}, {1, 120}, {3, 2}, {0, 120}, {5, 1}, {5, 0}} {
		if _, err := Inverse(tt.e, tt.phi); !errors.Is(err, ErrNoInverse) {
			t.Errorf("Inverse(%d, %d): expected ErrNoInverse, got %v", tt.e, tt.phi, err)
		}
	}
}

// TestInverseMatchesSearch checks the result against a linear search from 2
func TestInverseMatchesSearch(t *testing.T) {
	for phi := uint64(2); phi < 200; phi++ {
		for e := uint64(0); e < 2*phi; e++ {
			expected := uint64(0)
			for d := uint64(2); d < phi; d++ {
				if (d*e)%phi == 1 {
					expected = d
					break
				}
			}

			d, err := Inverse(e, phi)
			if expected == 0 {
				if !errors.Is(err, ErrNoInverse) {
					t.Fatalf("Inverse(%d, %d): expected ErrNoInverse, got %d, %v", e, phi, d, err)
				}
				continue
			}
			if err != nil || d != expected {
				t.Fatalf("Inverse(%d, %d): expected %d, got %d, %v", e, phi, expected, d, err)
			}
		}
	}
}

// TestGenerateBoundedLargePrimes checks primes accepted by Validate above 10^6
func TestGenerateBoundedLargePrimes(t *testing.T) {
	tests := []struct {
		p, q uint64
		e    uint64
	}{
		{1000003, 1000033, 5},
		{4294967291, 4294967279, 3},
	}

	for _, tt := range tests {
		if err := Validate(tt.p, tt.q); err != nil {
			t.Fatalf("Validate(%d, %d) failed: %v", tt.p, tt.q, err)
		}
		pub, priv, err := GenerateBounded(tt.p, tt.q)
		if err != nil {
			t.Fatalf("GenerateBounded(%d, %d) failed: %v", tt.p, tt.q, err)
		}
		if pub.Exponent != tt.e {
			t.Errorf("GenerateBounded(%d, %d): expected e=%d, got %d", tt.p, tt.q, tt.e, pub.Exponent)
		}
		phi := priv.Totient()
		if priv.Exponent < 2 || priv.Exponent >= phi {
			t.Errorf("GenerateBounded(%d, %d): d=%d out of [2, %d)", tt.p, tt.q, priv.Exponent, phi)
		}
		if primes.MulMod(pub.Exponent, priv.Exponent, phi) != 1 {
			t.Errorf("GenerateBounded(%d, %d): d=%d is not an inverse of e=%d", tt.p, tt.q, priv.Exponent, pub.Exponent)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(11, 13); err != nil {
		t.Fatalf("Validate(11, 13) failed: %v", err)
	}

	invalid := []struct{ p, q uint64 }{
		{11, 11},
		{12, 13},
		{11, 15},
		{1, 13},
		{4294967311, 4294967357},
	}
	for _, tt := range invalid {
		if err := Validate(tt.p, tt.q); !errors.Is(err, ErrInvalidKeyInput) {
			t.Errorf("Validate(%d, %d): expected ErrInvalidKeyInput, got %v", tt.p, tt.q, err)
		}
	}
}

func TestGenerateStrict(t *testing.T) {
	pub, priv, err := GenerateStrict(3, 7)
	if err != nil {
		t.Fatalf("GenerateStrict failed: %v", err)
	}
	if pub.Exponent != 5 || priv.Exponent != 5 {
		t.Errorf("Expected e=5 d=5, got e=%d d=%d", pub.Exponent, priv.Exponent)
	}

	if _, _, err := GenerateStrict(9, 7); !errors.Is(err, ErrInvalidKeyInput) {
		t.Errorf("Expected ErrInvalidKeyInput, got %v", err)
	}
}

func TestNew(t *testing.T) {
	kp, err := New(11, 13, true)
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}
	if !kp.Matches() {
		t.Fatal("Generated key pair halves do not match")
	}

	// non strict mode accepts composites as long as the search terminates
	kp, err = New(9, 7, false)
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}
	if kp.PublicKey.Modulus != 63 {
		t.Errorf("Expected modulus 63, got %d", kp.PublicKey.Modulus)
	}

	if _, err := New(9, 7, true); err == nil {
		t.Fatal("Expected strict mode to reject a composite")
	}
}

func TestMatches(t *testing.T) {
	kp, err := New(11, 13, false)
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}

	other, err := New(3, 7, false)
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}

	mixed := &KeyPair{PublicKey: kp.PublicKey, PrivateKey: other.PrivateKey}
	if mixed.Matches() {
		t.Fatal("Key pair built from different primes should not match")
	}
}

func TestToBytesFromBytes(t *testing.T) {
	kp, err := New(61, 53, false)
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}

	data, err := kp.ToBytes()
	if err != nil {
		t.Fatalf("Failed to serialize key pair: %v", err)
	}

	kp2, err := FromBytes(data)
	if err != nil {
		t.Fatalf("Failed to deserialize key pair: %v", err)
	}
	if *kp2 != *kp {
		t.Errorf("Expected %v, got %v", *kp, *kp2)
	}

	if _, err := FromBytes([]byte{0xc1}); err == nil {
		t.Error("Expected error when deserializing garbage")
	}
}
