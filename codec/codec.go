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

package codec

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/poolpOrg/toyrsa/encryption"
	"github.com/poolpOrg/toyrsa/encryption/keypair"
	"golang.org/x/sync/errgroup"
)

// Encode encrypts every code point of text on its own, in order. There is
// no chaining or padding: equal characters give equal ciphertexts.
// Code points at or above the modulus wrap and will not decode back.
// Invalid UTF-8 bytes are read as U+FFFD, so such text does not round trip
// either.
func Encode(text string, key keypair.PublicKey) []uint64 {
	encoded := make([]uint64, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		encoded = append(encoded, encryption.Encrypt(uint64(r), key))
	}
	return encoded
}

// Decode reverses Encode. A value that does not decrypt to a valid code
// point, which is what a mismatched key usually produces, becomes U+FFFD.
func Decode(encoded []uint64, key keypair.PrivateKey) string {
	var sb strings.Builder
	sb.Grow(len(encoded))
	for _, c := range encoded {
		sb.WriteRune(toRune(encryption.Decrypt(c, key)))
	}
	return sb.String()
}

// EncodeParallel splits the work over workers goroutines. The output is
// identical to Encode.
func EncodeParallel(ctx context.Context, text string, key keypair.PublicKey, workers int) ([]uint64, error) {
	runes := []rune(text)
	encoded := make([]uint64, len(runes))
	err := parallel(ctx, len(runes), workers, func(i int) {
		encoded[i] = encryption.Encrypt(uint64(runes[i]), key)
	})
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

func DecodeParallel(ctx context.Context, encoded []uint64, key keypair.PrivateKey, workers int) (string, error) {
	decoded := make([]rune, len(encoded))
	err := parallel(ctx, len(encoded), workers, func(i int) {
		decoded[i] = toRune(encryption.Decrypt(encoded[i], key))
	})
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// parallel runs fn over [0, n) in contiguous chunks, one per worker. Each
// index is written by exactly one goroutine.
func parallel(ctx context.Context, n int, workers int, fn func(int)) error {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if n == 0 {
		return ctx.Err()
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}

func toRune(m uint64) rune {
	if m > utf8.MaxRune || !utf8.ValidRune(rune(m)) {
		return utf8.RuneError
	}
	return rune(m)
}
