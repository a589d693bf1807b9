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

package hashing

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/blake2b"
)

func DefaultAlgorithm() string {
	return "sha256"
}

func Algorithms() []string {
	return []string{"sha256", "blake2b"}
}

func GetHasher(name string) hash.Hash {
	switch name {
	case "sha256":
		return sha256.New()
	case "blake2b":
		hasher, err := blake2b.New256(nil)
		if err != nil {
			return nil
		}
		return hasher
	default:
		return nil
	}
}

// Sum returns the digest of data under the named algorithm, or nil if the
// algorithm is unknown.
func Sum(name string, data []byte) []byte {
	hasher := GetHasher(name)
	if hasher == nil {
		return nil
	}
	hasher.Write(data)
	return hasher.Sum(nil)
}
