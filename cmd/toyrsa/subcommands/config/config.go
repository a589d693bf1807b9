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

package config

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands"
	"github.com/poolpOrg/toyrsa/context"
)

func init() {
	subcommands.Register("config", cmd_config)
}

func cmd_config(ctx *context.Context, args []string) int {
	flags := flag.NewFlagSet("config", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: toyrsa config [get param | set param value | key name [p q]]\n")
		flags.PrintDefaults()
	}
	flags.Parse(args)

	configAPI := ctx.GetConfig()
	if flags.NArg() == 0 {
		if err := configAPI.ListGlobalParameters(ctx.GetStdout()); err != nil {
			ctx.GetLogger().Error("config: %s", err)
			return 1
		}
		return 0
	}

	switch flags.Arg(0) {
	case "get":
		if flags.NArg() != 2 {
			flags.Usage()
			return 1
		}
		value, err := configAPI.GetGlobalParameter(flags.Arg(1))
		if err != nil {
			ctx.GetLogger().Error("config: %s", err)
			return 1
		}
		fmt.Fprintln(ctx.GetStdout(), value)

	case "set":
		if flags.NArg() != 3 {
			flags.Usage()
			return 1
		}
		if err := configAPI.SetGlobalParameter(flags.Arg(1), flags.Arg(2)); err != nil {
			ctx.GetLogger().Error("config: %s", err)
			return 1
		}

	case "key":
		switch flags.NArg() {
		case 2:
			primes, err := configAPI.GetKey(flags.Arg(1))
			if err != nil {
				ctx.GetLogger().Error("config: %s", err)
				return 1
			}
			fmt.Fprintf(ctx.GetStdout(), "p=%d q=%d\n", primes.P, primes.Q)
		case 4:
			p, err := strconv.ParseUint(flags.Arg(2), 10, 64)
			if err != nil {
				ctx.GetLogger().Error("config: invalid prime %q", flags.Arg(2))
				return 1
			}
			q, err := strconv.ParseUint(flags.Arg(3), 10, 64)
			if err != nil {
				ctx.GetLogger().Error("config: invalid prime %q", flags.Arg(3))
				return 1
			}
			if err := configAPI.SetKey(flags.Arg(1), p, q); err != nil {
				ctx.GetLogger().Error("config: %s", err)
				return 1
			}
		default:
			flags.Usage()
			return 1
		}

	default:
		flags.Usage()
		return 1
	}
	return 0
}
