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

// Package intercept plays the eavesdropper: with moduli small enough to
// factor, the public key is all it takes to rebuild the private one.
package intercept

import (
	"fmt"

	"github.com/poolpOrg/toyrsa/codec"
	"github.com/poolpOrg/toyrsa/encryption/keypair"
	"github.com/poolpOrg/toyrsa/primes"
	"github.com/poolpOrg/toyrsa/transmission"
)

func RecoverPrivateKey(publicKey keypair.PublicKey) (keypair.PrivateKey, error) {
	p, q, err := primes.Factor(publicKey.Modulus)
	if err != nil {
		return keypair.PrivateKey{}, fmt.Errorf("could not factor modulus %d: %w", publicKey.Modulus, err)
	}

	d, err := keypair.Inverse(publicKey.Exponent, (p-1)*(q-1))
	if err != nil {
		return keypair.PrivateKey{}, err
	}

	return keypair.PrivateKey{Exponent: d, Prime1: p, Prime2: q}, nil
}

// Crack recovers the private key of an intercepted transmission and
// decodes its ciphertext.
func Crack(t *transmission.Transmission) (string, keypair.PrivateKey, error) {
	privateKey, err := RecoverPrivateKey(t.PublicKey)
	if err != nil {
		return "", keypair.PrivateKey{}, err
	}
	return codec.Decode(t.Ciphertext, privateKey), privateKey, nil
}
