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

package encryption

import (
	"github.com/poolpOrg/toyrsa/encryption/keypair"
	"github.com/poolpOrg/toyrsa/primes"
)

// Encrypt computes m^e mod N. The result is the one e successive modular
// multiplications starting from 1 would give. m is expected to be below N,
// larger values wrap. N must not be zero.
func Encrypt(m uint64, key keypair.PublicKey) uint64 {
	return exp(m, key.Exponent, key.Modulus)
}

// Decrypt computes c^d mod p*q, the modulus being recomputed from the
// primes held by the private key. Neither prime may be zero.
func Decrypt(c uint64, key keypair.PrivateKey) uint64 {
	return exp(c, key.Exponent, key.Modulus())
}

// exp is square-and-multiply over MulMod. A zero exponent yields 1 whatever
// the modulus, as the empty product does.
func exp(base uint64, exponent uint64, modulus uint64) uint64 {
	result := uint64(1)
	for ; exponent > 0; exponent >>= 1 {
		if exponent&1 == 1 {
			result = primes.MulMod(result, base, modulus)
		}
		base = primes.MulMod(base, base, modulus)
	}
	return result
}
