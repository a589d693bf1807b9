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

package keygen

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands"
	"github.com/poolpOrg/toyrsa/cmd/toyrsa/utils"
	"github.com/poolpOrg/toyrsa/context"
)

func init() {
	subcommands.Register("keygen", cmd_keygen)
}

type keys struct {
	PublicKey struct {
		Exponent uint64 `json:"e"`
		Modulus  uint64 `json:"n"`
	} `json:"public"`
	PrivateKey struct {
		Exponent uint64 `json:"d"`
		Prime1   uint64 `json:"p"`
		Prime2   uint64 `json:"q"`
	} `json:"private"`
}

func cmd_keygen(ctx *context.Context, args []string) int {
	var opt_json bool
	var opt_save string
	var opt_output string

	flags := flag.NewFlagSet("keygen", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: toyrsa keygen [-p prime -q prime] [-key name] [-keyfile file] [-json] [-save name] [-o file]\n")
		flags.PrintDefaults()
	}
	opts := utils.PrimeFlags(flags)
	flags.BoolVar(&opt_json, "json", false, "output keys as JSON")
	flags.StringVar(&opt_save, "save", "", "store the primes in the configuration under this name")
	flags.StringVar(&opt_output, "o", "", "export the key pair to file, for use with -keyfile")
	flags.Parse(args)

	kp, err := opts.KeyPair(ctx)
	if err != nil {
		ctx.GetLogger().Error("keygen: %s", err)
		return 1
	}

	if opt_save != "" {
		if err := ctx.GetConfig().SetKey(opt_save, kp.PrivateKey.Prime1, kp.PrivateKey.Prime2); err != nil {
			ctx.GetLogger().Error("keygen: could not save key %q: %s", opt_save, err)
			return 1
		}
		ctx.GetLogger().Info("keygen: saved key %q to %s", opt_save, ctx.GetConfigFile())
	}

	if opt_output != "" {
		if err := utils.SaveKeyPair(kp, opt_output); err != nil {
			ctx.GetLogger().Error("keygen: could not export key pair: %s", err)
			return 1
		}
		ctx.GetLogger().Info("keygen: key pair exported to %s", opt_output)
	}

	if opt_json {
		var out keys
		out.PublicKey.Exponent = kp.PublicKey.Exponent
		out.PublicKey.Modulus = kp.PublicKey.Modulus
		out.PrivateKey.Exponent = kp.PrivateKey.Exponent
		out.PrivateKey.Prime1 = kp.PrivateKey.Prime1
		out.PrivateKey.Prime2 = kp.PrivateKey.Prime2

		enc := json.NewEncoder(ctx.GetStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			ctx.GetLogger().Error("keygen: %s", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(ctx.GetStdout(), "%s e=%d N=%d\n", utils.Label.Render("public key: "),
		kp.PublicKey.Exponent, kp.PublicKey.Modulus)
	fmt.Fprintf(ctx.GetStdout(), "%s d=%d p=%d q=%d\n", utils.Label.Render("private key:"),
		kp.PrivateKey.Exponent, kp.PrivateKey.Prime1, kp.PrivateKey.Prime2)
	return 0
}
