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

package encrypt

import (
	"flag"
	"fmt"

	"github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands"
	"github.com/poolpOrg/toyrsa/cmd/toyrsa/utils"
	"github.com/poolpOrg/toyrsa/context"
	"github.com/poolpOrg/toyrsa/encryption"
)

func init() {
	subcommands.Register("encrypt", cmd_encrypt)
}

func cmd_encrypt(ctx *context.Context, args []string) int {
	flags := flag.NewFlagSet("encrypt", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: toyrsa encrypt [-p prime -q prime] [-key name | -keyfile file] integer...\n")
		flags.PrintDefaults()
	}
	opts := utils.PrimeFlags(flags)
	flags.Parse(args)

	if flags.NArg() == 0 {
		flags.Usage()
		return 1
	}

	messages, err := utils.ParseIntegers(flags.Args())
	if err != nil {
		ctx.GetLogger().Error("encrypt: %s", err)
		return 1
	}

	kp, err := opts.KeyPair(ctx)
	if err != nil {
		ctx.GetLogger().Error("encrypt: %s", err)
		return 1
	}

	ciphertexts := make([]uint64, len(messages))
	for i, m := range messages {
		if m >= kp.PublicKey.Modulus {
			ctx.GetLogger().Warn("encrypt: %d is not below the modulus %d and will not decrypt back", m, kp.PublicKey.Modulus)
		}
		ciphertexts[i] = encryption.Encrypt(m, kp.PublicKey)
	}

	fmt.Fprintln(ctx.GetStdout(), utils.FormatIntegers(ciphertexts))
	return 0
}
