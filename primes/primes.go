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

package primes

import (
	"errors"
	"math/bits"
)

var ErrNotSemiprime = errors.New("not a product of two primes")

func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// MulMod returns a*b mod m without overflowing the intermediate product.
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// IsPrime uses trial division, which is fine for the toy moduli this
// package is meant for.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := uint64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// Factor splits n into p <= q, both prime.
func Factor(n uint64) (uint64, uint64, error) {
	if n < 4 {
		return 0, 0, ErrNotSemiprime
	}
	p := smallestFactor(n)
	if p == n {
		return 0, 0, ErrNotSemiprime
	}
	q := n / p
	if !IsPrime(q) {
		return 0, 0, ErrNotSemiprime
	}
	return p, q, nil
}

func smallestFactor(n uint64) uint64 {
	if n%2 == 0 {
		return 2
	}
	for i := uint64(3); i <= n/i; i += 2 {
		if n%i == 0 {
			return i
		}
	}
	return n
}
