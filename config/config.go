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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v2"
)

const DefaultKey = "default"

var (
	ErrParameterNotFound = errors.New("parameter not found")
	ErrKeyNotFound       = errors.New("key not found")
)

// Primes names the two primes a key pair is derived from. Keys are
// rederived on every run, only the primes are stored.
type Primes struct {
	P uint64 `yaml:"p"`
	Q uint64 `yaml:"q"`
}

type Configuration struct {
	Global map[string]string `yaml:"global"`
	Keys   map[string]Primes `yaml:"keys"`
}

type ConfigAPI struct {
	configFilePath string
	config         Configuration
}

func NewConfigAPI(filePath string) *ConfigAPI {
	return &ConfigAPI{
		configFilePath: filePath,
		config:         defaultConfiguration(),
	}
}

func defaultConfiguration() Configuration {
	return Configuration{
		Global: map[string]string{
			"strict":      "false",
			"compression": "lz4",
			"hashing":     "sha256",
			"workers":     "0",
		},
		Keys: map[string]Primes{
			DefaultKey: {P: 11, Q: 13},
		},
	}
}

// loadConfig overlays the file on the defaults, a missing file is not an
// error.
func (c *ConfigAPI) loadConfig() error {
	c.config = defaultConfiguration()

	data, err := os.ReadFile(c.configFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	var fileConfig Configuration
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("%s: %w", c.configFilePath, err)
	}
	for key, value := range fileConfig.Global {
		c.config.Global[key] = value
	}
	for name, primes := range fileConfig.Keys {
		c.config.Keys[name] = primes
	}
	return nil
}

func (c *ConfigAPI) saveConfig() error {
	data, err := yaml.Marshal(c.config)
	if err != nil {
		return err
	}
	return os.WriteFile(c.configFilePath, data, 0600)
}

func (c *ConfigAPI) Load() error {
	return c.loadConfig()
}

func (c *ConfigAPI) ListGlobalParameters(w io.Writer) error {
	if err := c.loadConfig(); err != nil {
		return err
	}

	keys := make([]string, 0, len(c.config.Global))
	for key := range c.config.Global {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s: %s\n", key, c.config.Global[key])
	}
	return nil
}

func (c *ConfigAPI) GetGlobalParameter(key string) (string, error) {
	if err := c.loadConfig(); err != nil {
		return "", err
	}
	value, exists := c.config.Global[key]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrParameterNotFound, key)
	}
	return value, nil
}

func (c *ConfigAPI) SetGlobalParameter(key string, value string) error {
	if err := c.loadConfig(); err != nil {
		return err
	}
	c.config.Global[key] = value
	return c.saveConfig()
}

func (c *ConfigAPI) GetKey(name string) (Primes, error) {
	if err := c.loadConfig(); err != nil {
		return Primes{}, err
	}
	primes, exists := c.config.Keys[name]
	if !exists {
		return Primes{}, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	return primes, nil
}

func (c *ConfigAPI) SetKey(name string, p uint64, q uint64) error {
	if err := c.loadConfig(); err != nil {
		return err
	}
	c.config.Keys[name] = Primes{P: p, Q: q}
	return c.saveConfig()
}

// The typed accessors below read the loaded configuration and fall back
// to the defaults on malformed values.

func (c *ConfigAPI) Strict() bool {
	strict, err := strconv.ParseBool(c.config.Global["strict"])
	return err == nil && strict
}

func (c *ConfigAPI) Compression() string {
	return c.config.Global["compression"]
}

func (c *ConfigAPI) Hashing() string {
	return c.config.Global["hashing"]
}

func (c *ConfigAPI) Workers() int {
	workers, err := strconv.Atoi(c.config.Global["workers"])
	if err != nil || workers < 0 {
		return 0
	}
	return workers
}
