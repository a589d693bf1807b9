/*
 * Copyright (c) 2021 Gilles Chehade <gilles@poolp.org>
 *
 * Permission to use, copy, modify, and distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package keypair

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/poolpOrg/toyrsa/primes"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrInvalidKeyInput   = errors.New("invalid key input")
	ErrDegenerateTotient = errors.New("degenerate totient")
	ErrNoExponent        = errors.New("no public exponent below totient")
	ErrNoInverse         = errors.New("exponent has no inverse modulo totient")
)

// PublicKey is the (e, N) half of a key pair.
type PublicKey struct {
	Exponent uint64
	Modulus  uint64
}

// PrivateKey keeps the prime factors rather than N, the modulus is
// recomputed from them when decrypting.
type PrivateKey struct {
	Exponent uint64
	Prime1   uint64
	Prime2   uint64
}

func (k PrivateKey) Modulus() uint64 {
	return k.Prime1 * k.Prime2
}

func (k PrivateKey) Totient() uint64 {
	return (k.Prime1 - 1) * (k.Prime2 - 1)
}

type KeyPair struct {
	PublicKey  PublicKey
	PrivateKey PrivateKey
}

// Generate derives the key pair for primes p and q. The public exponent is
// the smallest e >= 2 coprime to the totient and the private exponent the
// smallest d >= 2 with d*e = 1 mod totient, so the result only depends on
// p and q.
//
// p and q must be distinct primes. This is not checked: on a degenerate
// totient the search never returns, and the private exponent search is
// linear in the totient. Use GenerateBounded or GenerateStrict when the
// input is not trusted or the primes are large.
func Generate(p, q uint64) (PublicKey, PrivateKey) {
	n := p * q
	phi := (p - 1) * (q - 1)

	e := uint64(2)
	for primes.GCD(e, phi) != 1 {
		e++
	}

	d := uint64(2)
	for primes.MulMod(d, e, phi) != 1 {
		d++
	}

	return PublicKey{Exponent: e, Modulus: n}, PrivateKey{Exponent: d, Prime1: p, Prime2: q}
}

// GenerateBounded returns the same keys as Generate but caps both searches
// at the totient, reporting an error where Generate would loop forever.
func GenerateBounded(p, q uint64) (PublicKey, PrivateKey, error) {
	phi := (p - 1) * (q - 1)
	if p < 2 || q < 2 || phi <= 1 {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("%w: p=%d q=%d", ErrDegenerateTotient, p, q)
	}

	e := uint64(2)
	for ; e < phi; e++ {
		if primes.GCD(e, phi) == 1 {
			break
		}
	}
	if e >= phi {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("%w: totient=%d", ErrNoExponent, phi)
	}

	d, err := Inverse(e, phi)
	if err != nil {
		return PublicKey{}, PrivateKey{}, err
	}

	return PublicKey{Exponent: e, Modulus: p * q}, PrivateKey{Exponent: d, Prime1: p, Prime2: q}, nil
}

// Inverse returns the smallest d in [2, phi) such that d*e = 1 mod phi,
// using the extended Euclidean algorithm. The inverse in [0, phi) is
// unique, so this is the value a linear search from 2 would find.
func Inverse(e, phi uint64) (uint64, error) {
	if phi < 2 {
		return 0, fmt.Errorf("%w: e=%d totient=%d", ErrNoInverse, e, phi)
	}

	// t0*e = r0 and t1*e = r1 mod phi throughout
	r0, r1 := phi, e%phi
	t0, t1 := uint64(0), uint64(1)
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		t0, t1 = t1, subMod(t0, primes.MulMod(q, t1, phi), phi)
	}

	if r0 != 1 || t0 < 2 {
		return 0, fmt.Errorf("%w: e=%d totient=%d", ErrNoInverse, e, phi)
	}
	return t0, nil
}

// subMod returns a-b mod m for a, b in [0, m).
func subMod(a, b, m uint64) uint64 {
	if a >= b {
		return a - b
	}
	return m - (b - a)
}

// Validate checks the preconditions Generate leaves to the caller. For a
// pair that passes, GenerateStrict runs in time logarithmic in the
// totient: the smallest exponent coprime to a 64-bit totient is at most 53.
func Validate(p, q uint64) error {
	if !primes.IsPrime(p) {
		return fmt.Errorf("%w: %d is not prime", ErrInvalidKeyInput, p)
	}
	if !primes.IsPrime(q) {
		return fmt.Errorf("%w: %d is not prime", ErrInvalidKeyInput, q)
	}
	if p == q {
		return fmt.Errorf("%w: primes must be distinct", ErrInvalidKeyInput)
	}
	if hi, _ := bits.Mul64(p, q); hi != 0 {
		return fmt.Errorf("%w: %d*%d overflows the modulus", ErrInvalidKeyInput, p, q)
	}
	return nil
}

func GenerateStrict(p, q uint64) (PublicKey, PrivateKey, error) {
	if err := Validate(p, q); err != nil {
		return PublicKey{}, PrivateKey{}, err
	}
	return GenerateBounded(p, q)
}

func New(p, q uint64, strict bool) (*KeyPair, error) {
	generate := GenerateBounded
	if strict {
		generate = GenerateStrict
	}

	if publicKey, privateKey, err := generate(p, q); err != nil {
		return nil, err
	} else {
		return &KeyPair{
			PublicKey:  publicKey,
			PrivateKey: privateKey,
		}, nil
	}
}

func (kp *KeyPair) ToBytes() ([]byte, error) {
	if data, err := msgpack.Marshal(kp); err != nil {
		return nil, err
	} else {
		return data, nil
	}
}

func FromBytes(data []byte) (*KeyPair, error) {
	var kp KeyPair
	if err := msgpack.Unmarshal(data, &kp); err != nil {
		return nil, err
	}
	return &kp, nil
}

// Matches reports whether both halves were derived from the same primes.
func (kp *KeyPair) Matches() bool {
	phi := kp.PrivateKey.Totient()
	if kp.PublicKey.Modulus != kp.PrivateKey.Modulus() || phi < 2 {
		return false
	}
	return primes.MulMod(kp.PublicKey.Exponent, kp.PrivateKey.Exponent, phi) == 1
}
