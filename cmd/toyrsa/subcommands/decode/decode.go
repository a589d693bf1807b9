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

package decode

import (
	"flag"
	"fmt"
	"os"

	"github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands"
	"github.com/poolpOrg/toyrsa/cmd/toyrsa/utils"
	"github.com/poolpOrg/toyrsa/codec"
	"github.com/poolpOrg/toyrsa/context"
	"github.com/poolpOrg/toyrsa/encryption/keypair"
	"github.com/poolpOrg/toyrsa/transmission"
)

func init() {
	subcommands.Register("decode", cmd_decode)
}

func cmd_decode(ctx *context.Context, args []string) int {
	var opt_input string

	flags := flag.NewFlagSet("decode", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: toyrsa decode [-p prime -q prime] [-key name | -keyfile file] [-i file | integer...]\n")
		flags.PrintDefaults()
	}
	opts := utils.PrimeFlags(flags)
	flags.StringVar(&opt_input, "i", "", "read a sealed transmission from file")
	flags.Parse(args)

	kp, err := opts.KeyPair(ctx)
	if err != nil {
		ctx.GetLogger().Error("decode: %s", err)
		return 1
	}

	var encoded []uint64
	if opt_input != "" {
		data, err := os.ReadFile(opt_input)
		if err != nil {
			ctx.GetLogger().Error("decode: %s", err)
			return 1
		}
		t, err := transmission.Open(data)
		if err != nil {
			ctx.GetLogger().Error("decode: %s: %s", opt_input, err)
			return 1
		}
		received := keypair.KeyPair{PublicKey: t.PublicKey, PrivateKey: kp.PrivateKey}
		if !received.Matches() {
			ctx.GetLogger().Warn("decode: transmission %s was encoded for e=%d N=%d, output will be garbage",
				t.ID, t.PublicKey.Exponent, t.PublicKey.Modulus)
		}
		encoded = t.Ciphertext
	} else {
		message, err := utils.ReadMessage(ctx, flags.Args())
		if err != nil {
			ctx.GetLogger().Error("decode: %s", err)
			return 1
		}
		encoded, err = utils.ParseIntegers([]string{message})
		if err != nil {
			ctx.GetLogger().Error("decode: %s", err)
			return 1
		}
	}

	done := ctx.Profiler().Track("decode")
	decoded, err := codec.DecodeParallel(ctx.GetContext(), encoded, kp.PrivateKey, ctx.GetWorkers())
	done()
	if err != nil {
		ctx.GetLogger().Error("decode: %s", err)
		return 1
	}
	ctx.GetLogger().Trace("codec", "decoded %d characters with %d workers", len(encoded), ctx.GetWorkers())

	fmt.Fprintln(ctx.GetStdout(), decoded)
	return 0
}
