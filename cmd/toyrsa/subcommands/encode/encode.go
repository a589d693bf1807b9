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

package encode

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands"
	"github.com/poolpOrg/toyrsa/cmd/toyrsa/utils"
	"github.com/poolpOrg/toyrsa/codec"
	"github.com/poolpOrg/toyrsa/compression"
	"github.com/poolpOrg/toyrsa/context"
	"github.com/poolpOrg/toyrsa/hashing"
	"github.com/poolpOrg/toyrsa/transmission"
)

func init() {
	subcommands.Register("encode", cmd_encode)
}

func cmd_encode(ctx *context.Context, args []string) int {
	var opt_output string
	var opt_compression string
	var opt_hashing string

	flags := flag.NewFlagSet("encode", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: toyrsa encode [-p prime -q prime] [-key name | -keyfile file] [-o file] [text...]\n")
		flags.PrintDefaults()
	}
	opts := utils.PrimeFlags(flags)
	flags.StringVar(&opt_output, "o", "", "write a sealed transmission to file")
	flags.StringVar(&opt_compression, "compression", ctx.GetCompression(),
		fmt.Sprintf("transmission compression (%s)", strings.Join(compression.Algorithms(), ", ")))
	flags.StringVar(&opt_hashing, "hashing", ctx.GetHashing(),
		fmt.Sprintf("transmission checksum (%s)", strings.Join(hashing.Algorithms(), ", ")))
	flags.Parse(args)

	if !slices.Contains(compression.Algorithms(), opt_compression) {
		ctx.GetLogger().Error("encode: unsupported compression %q, expected one of: %s",
			opt_compression, strings.Join(compression.Algorithms(), ", "))
		return 1
	}
	if !slices.Contains(hashing.Algorithms(), opt_hashing) {
		ctx.GetLogger().Error("encode: unsupported hashing %q, expected one of: %s",
			opt_hashing, strings.Join(hashing.Algorithms(), ", "))
		return 1
	}

	message, err := utils.ReadMessage(ctx, flags.Args())
	if err != nil {
		ctx.GetLogger().Error("encode: %s", err)
		return 1
	}

	kp, err := opts.KeyPair(ctx)
	if err != nil {
		ctx.GetLogger().Error("encode: %s", err)
		return 1
	}

	for _, r := range message {
		if uint64(r) >= kp.PublicKey.Modulus {
			ctx.GetLogger().Warn("encode: %q (U+%04X) is not below the modulus %d and will not decode back",
				r, r, kp.PublicKey.Modulus)
		}
	}

	done := ctx.Profiler().Track("encode")
	encoded, err := codec.EncodeParallel(ctx.GetContext(), message, kp.PublicKey, ctx.GetWorkers())
	done()
	if err != nil {
		ctx.GetLogger().Error("encode: %s", err)
		return 1
	}
	ctx.GetLogger().Trace("codec", "encoded %d characters with %d workers", len(encoded), ctx.GetWorkers())

	if opt_output == "" {
		fmt.Fprintln(ctx.GetStdout(), utils.FormatIntegers(encoded))
		return 0
	}

	t := transmission.New(kp.PublicKey, encoded)
	data, err := transmission.Seal(t, opt_compression, opt_hashing)
	if err != nil {
		ctx.GetLogger().Error("encode: %s", err)
		return 1
	}
	ctx.GetLogger().Trace("transmission", "%s: sealed %d ciphertexts with %s/%s", t.ID, len(encoded), opt_compression, opt_hashing)

	if err := os.WriteFile(opt_output, data, 0644); err != nil {
		ctx.GetLogger().Error("encode: %s", err)
		return 1
	}
	ctx.GetLogger().Info("encode: transmission %s written to %s (%s)", t.ID, opt_output, humanize.Bytes(uint64(len(data))))
	return 0
}
