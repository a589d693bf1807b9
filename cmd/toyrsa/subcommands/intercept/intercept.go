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

package intercept

import (
	"flag"
	"fmt"
	"os"

	"github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands"
	"github.com/poolpOrg/toyrsa/cmd/toyrsa/utils"
	"github.com/poolpOrg/toyrsa/codec"
	"github.com/poolpOrg/toyrsa/context"
	"github.com/poolpOrg/toyrsa/intercept"
	"github.com/poolpOrg/toyrsa/transmission"
)

const demoMessage = "Mensagem Super Secreta"

func init() {
	subcommands.Register("intercept", cmd_intercept)
}

func cmd_intercept(ctx *context.Context, args []string) int {
	var opt_input string

	flags := flag.NewFlagSet("intercept", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: toyrsa intercept [-i file | -p prime -q prime | -key name]\n")
		flags.PrintDefaults()
	}
	opts := utils.PrimeFlags(flags)
	flags.StringVar(&opt_input, "i", "", "sealed transmission to crack")
	flags.Parse(args)

	var t *transmission.Transmission
	if opt_input != "" {
		data, err := os.ReadFile(opt_input)
		if err != nil {
			ctx.GetLogger().Error("intercept: %s", err)
			return 1
		}
		t, err = transmission.Open(data)
		if err != nil {
			ctx.GetLogger().Error("intercept: %s: %s", opt_input, err)
			return 1
		}
	} else {
		// nothing to intercept, stage a transmission under the configured key
		kp, err := opts.KeyPair(ctx)
		if err != nil {
			ctx.GetLogger().Error("intercept: %s", err)
			return 1
		}
		t = transmission.New(kp.PublicKey, codec.Encode(demoMessage, kp.PublicKey))
	}

	stdout := ctx.GetStdout()
	fmt.Fprintf(stdout, "%s %s\n", utils.Label.Render("transmission:"), t.ID)
	fmt.Fprintf(stdout, "%s e=%d N=%d\n", utils.Label.Render("public key:  "), t.PublicKey.Exponent, t.PublicKey.Modulus)
	fmt.Fprintf(stdout, "%s %s\n", utils.Label.Render("ciphertext:  "), utils.FormatIntegers(t.Ciphertext))

	done := ctx.Profiler().Track("crack")
	plaintext, privateKey, err := intercept.Crack(t)
	done()
	if err != nil {
		fmt.Fprintf(stdout, "%s %s\n", utils.CrossMark, err)
		return 1
	}

	fmt.Fprintf(stdout, "%s N=%d=%d*%d\n", utils.Label.Render("factored:    "),
		t.PublicKey.Modulus, privateKey.Prime1, privateKey.Prime2)
	fmt.Fprintf(stdout, "%s d=%d\n", utils.Label.Render("private key: "), privateKey.Exponent)
	fmt.Fprintf(stdout, "%s %s %s\n", utils.Label.Render("plaintext:   "), utils.CheckMark, plaintext)
	return 0
}
