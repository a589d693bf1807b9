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

package main

import (
	gocontext "context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands"
	"github.com/poolpOrg/toyrsa/compression"
	"github.com/poolpOrg/toyrsa/config"
	"github.com/poolpOrg/toyrsa/context"
	"github.com/poolpOrg/toyrsa/hashing"
	"github.com/poolpOrg/toyrsa/logging"

	_ "github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands/config"
	_ "github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands/decode"
	_ "github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands/decrypt"
	_ "github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands/encode"
	_ "github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands/encrypt"
	_ "github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands/help"
	_ "github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands/intercept"
	_ "github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands/keygen"
	_ "github.com/poolpOrg/toyrsa/cmd/toyrsa/subcommands/version"
)

func main() {
	os.Exit(entryPoint())
}

func entryPoint() int {
	var opt_config string
	var opt_trace string
	var opt_info bool
	var opt_debug bool
	var opt_profiling bool
	var opt_strict bool
	var opt_cpus int
	var opt_workers int

	homeDir := os.Getenv("HOME")
	if pwUser, err := user.Current(); err == nil {
		homeDir = pwUser.HomeDir
	}

	flag.StringVar(&opt_config, "config", filepath.Join(homeDir, ".toyrsa.yml"), "configuration file")
	flag.StringVar(&opt_trace, "trace", "", "display trace logs, comma-separated (keypair, codec, transmission, all)")
	flag.BoolVar(&opt_info, "info", false, "display info logs")
	flag.BoolVar(&opt_debug, "debug", false, "display debug logs")
	flag.BoolVar(&opt_profiling, "profiler", false, "display profiling logs")
	flag.BoolVar(&opt_strict, "strict", false, "reject non-prime or equal primes")
	flag.IntVar(&opt_cpus, "cpu", runtime.NumCPU(), "limit the number of usable cores")
	flag.IntVar(&opt_workers, "workers", -1, "codec workers, 0 for one per core")
	flag.Parse()

	ctx := context.NewContext()
	ctx.SetStdin(os.Stdin)
	ctx.SetStdout(os.Stdout)
	ctx.SetStderr(os.Stderr)
	logger := logging.NewLogger(ctx.GetStdout(), ctx.GetStderr())
	ctx.SetLogger(logger)

	if opt_info {
		logger.EnableInfo()
	}
	if opt_debug {
		logger.EnableDebug()
	}
	if opt_trace != "" {
		logger.EnableTrace(opt_trace)
	}

	if opt_cpus <= 0 {
		opt_cpus = 1
	}
	if opt_cpus > runtime.NumCPU() {
		logger.Error("%s: can't use more cores than available: %d", flag.CommandLine.Name(), runtime.NumCPU())
		return 1
	}
	runtime.GOMAXPROCS(opt_cpus)
	ctx.SetNumCPU(opt_cpus)

	configAPI := config.NewConfigAPI(opt_config)
	if err := configAPI.Load(); err != nil {
		logger.Error("%s: could not load configuration: %s", flag.CommandLine.Name(), err)
		return 1
	}
	ctx.SetConfig(configAPI)
	ctx.SetConfigFile(opt_config)
	ctx.SetStrict(opt_strict || configAPI.Strict())

	ctx.SetWorkers(configAPI.Workers())
	if opt_workers >= 0 {
		ctx.SetWorkers(opt_workers)
	}

	ctx.SetCompression(configAPI.Compression())
	if ctx.GetCompression() == "" {
		ctx.SetCompression(compression.DefaultAlgorithm())
	}
	ctx.SetHashing(configAPI.Hashing())
	if ctx.GetHashing() == "" {
		ctx.SetHashing(hashing.DefaultAlgorithm())
	}

	ctx.SetCommandLine(strings.Join(os.Args, " "))
	logger.Debug("%s: %s", flag.CommandLine.Name(), ctx.GetCommandLine())
	logger.Debug("%s: cpus=%d strict=%t workers=%d compression=%s hashing=%s", flag.CommandLine.Name(),
		ctx.GetNumCPU(), ctx.GetStrict(), ctx.GetWorkers(), ctx.GetCompression(), ctx.GetHashing())

	signalCtx, stop := signal.NotifyContext(gocontext.Background(), os.Interrupt)
	defer stop()
	ctx.SetContext(signalCtx)

	if flag.NArg() == 0 {
		fmt.Fprintf(ctx.GetStderr(), "%s: a subcommand must be provided\n", filepath.Base(flag.CommandLine.Name()))
		for _, command := range subcommands.List() {
			fmt.Fprintf(ctx.GetStderr(), "  %s\n", command)
		}
		return 1
	}

	command, args := flag.Arg(0), flag.Args()[1:]
	status, err := subcommands.Execute(ctx, command, args)
	if err != nil {
		logger.Error("%s: %s", flag.CommandLine.Name(), err)
	}

	if opt_profiling {
		ctx.Profiler().Display(logger)
	}

	return status
}
