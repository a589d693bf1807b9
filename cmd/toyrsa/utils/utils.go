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

package utils

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/poolpOrg/toyrsa/config"
	"github.com/poolpOrg/toyrsa/context"
	"github.com/poolpOrg/toyrsa/encryption/keypair"
	"golang.org/x/term"
)

var (
	CheckMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).SetString("✓")
	CrossMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).SetString("✘")
	Label     = lipgloss.NewStyle().Bold(true)
)

var (
	ErrNoMessage       = errors.New("no message on command line or stdin")
	ErrKeyFileMismatch = errors.New("key file halves do not match")
)

type PrimeOptions struct {
	P       uint64
	Q       uint64
	Key     string
	KeyFile string
}

// PrimeFlags registers the -p, -q, -key and -keyfile options shared by
// every subcommand that derives keys.
func PrimeFlags(flags *flag.FlagSet) *PrimeOptions {
	opts := &PrimeOptions{}
	flags.Uint64Var(&opts.P, "p", 0, "first prime")
	flags.Uint64Var(&opts.Q, "q", 0, "second prime")
	flags.StringVar(&opts.Key, "key", config.DefaultKey, "configured key to use when -p and -q are not set")
	flags.StringVar(&opts.KeyFile, "keyfile", "", "key pair exported by keygen -o, instead of primes")
	return opts
}

func (opts *PrimeOptions) Primes(ctx *context.Context) (uint64, uint64, error) {
	if opts.P != 0 || opts.Q != 0 {
		if opts.P == 0 || opts.Q == 0 {
			return 0, 0, fmt.Errorf("both -p and -q must be set")
		}
		return opts.P, opts.Q, nil
	}

	if ctx.GetConfig() == nil {
		return 0, 0, fmt.Errorf("no configuration to read key %q from", opts.Key)
	}
	primes, err := ctx.GetConfig().GetKey(opts.Key)
	if err != nil {
		return 0, 0, err
	}
	return primes.P, primes.Q, nil
}

// KeyPair derives the session keys. They are rebuilt from the primes on
// every invocation and handed to the caller, nothing is cached.
func (opts *PrimeOptions) KeyPair(ctx *context.Context) (*keypair.KeyPair, error) {
	if opts.KeyFile != "" {
		return LoadKeyPair(ctx, opts.KeyFile)
	}

	p, q, err := opts.Primes(ctx)
	if err != nil {
		return nil, err
	}

	defer ctx.Profiler().Track("keygen")()
	kp, err := keypair.New(p, q, ctx.GetStrict())
	if err != nil {
		return nil, err
	}
	ctx.GetLogger().Trace("keypair", "p=%d q=%d e=%d d=%d N=%d", p, q,
		kp.PublicKey.Exponent, kp.PrivateKey.Exponent, kp.PublicKey.Modulus)
	return kp, nil
}

// LoadKeyPair reads a key pair written by SaveKeyPair. Both halves must
// derive from the same primes, which strict mode also validates.
func LoadKeyPair(ctx *context.Context, path string) (*keypair.KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	kp, err := keypair.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !kp.Matches() {
		return nil, fmt.Errorf("%s: %w", path, ErrKeyFileMismatch)
	}
	if ctx.GetStrict() {
		if err := keypair.Validate(kp.PrivateKey.Prime1, kp.PrivateKey.Prime2); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	ctx.GetLogger().Trace("keypair", "%s: e=%d d=%d N=%d", path,
		kp.PublicKey.Exponent, kp.PrivateKey.Exponent, kp.PublicKey.Modulus)
	return kp, nil
}

// SaveKeyPair writes the key pair in its msgpack form. The file holds the
// private key and is created user-readable only.
func SaveKeyPair(kp *keypair.KeyPair, path string) error {
	data, err := kp.ToBytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ParseIntegers accepts integers separated by commas or whitespace, split
// across any number of arguments.
func ParseIntegers(args []string) ([]uint64, error) {
	values := make([]uint64, 0, len(args))
	for _, arg := range args {
		for _, field := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || unicode.IsSpace(r) }) {
			value, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid integer %q: %w", field, err)
			}
			values = append(values, value)
		}
	}
	return values, nil
}

func FormatIntegers(values []uint64) string {
	fields := make([]string, len(values))
	for i, value := range values {
		fields[i] = strconv.FormatUint(value, 10)
	}
	return strings.Join(fields, " ")
}

// ReadMessage returns the arguments joined by spaces, or stdin when there
// are none and stdin is not a terminal.
func ReadMessage(ctx *context.Context, args []string) (string, error) {
	if len(args) != 0 {
		return strings.Join(args, " "), nil
	}

	stdin := ctx.GetStdin()
	if fp, ok := stdin.(*os.File); ok && term.IsTerminal(int(fp.Fd())) {
		return "", ErrNoMessage
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	message := strings.TrimSuffix(string(data), "\n")
	if message == "" {
		return "", ErrNoMessage
	}
	return message, nil
}
