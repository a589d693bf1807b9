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

package transmission

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/poolpOrg/toyrsa/compression"
	"github.com/poolpOrg/toyrsa/encryption/keypair"
	"github.com/poolpOrg/toyrsa/hashing"
	"github.com/vmihailenco/msgpack/v5"
)

const VERSION = 1

var (
	ErrChecksumMismatch   = errors.New("transmission checksum mismatch")
	ErrUnsupportedVersion = errors.New("unsupported transmission version")
	ErrUnknownHashing     = errors.New("unknown hashing algorithm")
)

// Transmission is a ciphertext sequence as it travels between two parties,
// along with the public key it was produced under.
type Transmission struct {
	ID         uuid.UUID
	Timestamp  time.Time
	PublicKey  keypair.PublicKey
	Ciphertext []uint64
}

type envelope struct {
	Version     uint32
	Compression string
	Hashing     string
	Checksum    []byte
	Payload     []byte
}

func New(publicKey keypair.PublicKey, ciphertext []uint64) *Transmission {
	return &Transmission{
		ID:         uuid.New(),
		Timestamp:  time.Now().UTC(),
		PublicKey:  publicKey,
		Ciphertext: ciphertext,
	}
}

// Seal serializes t, compresses it and checksums the compressed payload.
func Seal(t *Transmission, compressionMethod string, hashingAlgorithm string) ([]byte, error) {
	data, err := msgpack.Marshal(t)
	if err != nil {
		return nil, err
	}

	payload, err := compression.Deflate(compressionMethod, data)
	if err != nil {
		return nil, err
	}

	checksum := hashing.Sum(hashingAlgorithm, payload)
	if checksum == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashing, hashingAlgorithm)
	}

	return msgpack.Marshal(&envelope{
		Version:     VERSION,
		Compression: compressionMethod,
		Hashing:     hashingAlgorithm,
		Checksum:    checksum,
		Payload:     payload,
	})
}

func Open(data []byte) (*Transmission, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	if env.Version != VERSION {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	checksum := hashing.Sum(env.Hashing, env.Payload)
	if checksum == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashing, env.Hashing)
	}
	if !bytes.Equal(checksum, env.Checksum) {
		return nil, ErrChecksumMismatch
	}

	data, err := compression.Inflate(env.Compression, env.Payload)
	if err != nil {
		return nil, err
	}

	var t Transmission
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
