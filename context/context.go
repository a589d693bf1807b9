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

package context

import (
	gocontext "context"
	"io"
	"os"

	"github.com/poolpOrg/toyrsa/config"
	"github.com/poolpOrg/toyrsa/logging"
	"github.com/poolpOrg/toyrsa/profiler"
)

type Context struct {
	context gocontext.Context

	logger   *logging.Logger
	profiler *profiler.Profiler
	config   *config.ConfigAPI

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	numCPU      int
	strict      bool
	workers     int
	compression string
	hashing     string
	configFile  string
	commandLine string
}

func NewContext() *Context {
	return &Context{
		context:  gocontext.Background(),
		logger:   logging.NewLogger(os.Stdout, os.Stderr),
		profiler: profiler.New(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

func (c *Context) SetContext(ctx gocontext.Context) {
	c.context = ctx
}

func (c *Context) GetContext() gocontext.Context {
	return c.context
}

func (c *Context) SetLogger(logger *logging.Logger) {
	c.logger = logger
}

func (c *Context) GetLogger() *logging.Logger {
	return c.logger
}

func (c *Context) Profiler() *profiler.Profiler {
	return c.profiler
}

func (c *Context) SetConfig(config *config.ConfigAPI) {
	c.config = config
}

func (c *Context) GetConfig() *config.ConfigAPI {
	return c.config
}

func (c *Context) SetStdin(stdin io.Reader) {
	c.stdin = stdin
}

func (c *Context) GetStdin() io.Reader {
	return c.stdin
}

func (c *Context) SetStdout(stdout io.Writer) {
	c.stdout = stdout
}

func (c *Context) GetStdout() io.Writer {
	return c.stdout
}

func (c *Context) SetStderr(stderr io.Writer) {
	c.stderr = stderr
}

func (c *Context) GetStderr() io.Writer {
	return c.stderr
}

func (c *Context) SetNumCPU(numCPU int) {
	c.numCPU = numCPU
}

func (c *Context) GetNumCPU() int {
	return c.numCPU
}

func (c *Context) SetStrict(strict bool) {
	c.strict = strict
}

func (c *Context) GetStrict() bool {
	return c.strict
}

// SetWorkers sets the codec parallelism, 0 meaning one worker per CPU.
func (c *Context) SetWorkers(workers int) {
	c.workers = workers
}

func (c *Context) GetWorkers() int {
	if c.workers <= 0 {
		return c.numCPU
	}
	return c.workers
}

func (c *Context) SetCompression(compression string) {
	c.compression = compression
}

func (c *Context) GetCompression() string {
	return c.compression
}

func (c *Context) SetHashing(hashing string) {
	c.hashing = hashing
}

func (c *Context) GetHashing() string {
	return c.hashing
}

func (c *Context) SetConfigFile(configFile string) {
	c.configFile = configFile
}

func (c *Context) GetConfigFile() string {
	return c.configFile
}

func (c *Context) SetCommandLine(commandLine string) {
	c.commandLine = commandLine
}

func (c *Context) GetCommandLine() string {
	return c.commandLine
}
