/*
 * config.go, part of atsim.
 *
 * Copyright 2026 The atsim Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config reads the description of a batch of computes from a TOML file.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rmera/atsim/compute"
	"github.com/rs/zerolog"
)

// Config is a batch of computes and the settings to evaluate them.
type Config struct {
	Workers   int
	LogLevel  zerolog.Level
	CacheSize int
	Computes  []Compute
}

// Compute is a compute requested in a config file.
type Compute struct {
	Name      string      `toml:"name"`
	ID        string      `toml:"id"`
	EnergySrc string      `toml:"energy_src"`
	OptStep   interface{} `toml:"opt_step"` //checked by the energy compute
	SeriesID  []string    `toml:"series_id"`
	Unit      string      `toml:"unit"`
	InfoName  string      `toml:"info_name"`
}

type fileConfig struct {
	Workers   int       `toml:"workers"`
	LogLevel  string    `toml:"log_level"`
	CacheSize int       `toml:"cache_size"`
	Computes  []Compute `toml:"compute"`
}

// Default returns a Config with no computes and the default settings.
func Default() Config {
	return Config{Workers: 1, LogLevel: zerolog.InfoLevel, CacheSize: compute.DefaultCacheSize}
}

// Load reads the config in the TOML file path.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load atsim config: %w", err)
	}
	return build(raw, meta)
}

// Decode reads a config from TOML text.
func Decode(text string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(text, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("decode atsim config: %w", err)
	}
	return build(raw, meta)
}

func build(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := Default()
	if und := meta.Undecoded(); len(und) > 0 {
		return Config{}, fmt.Errorf("unknown config keys: %v", und)
	}
	if meta.IsDefined("workers") {
		if raw.Workers < 0 {
			return Config{}, fmt.Errorf("workers must be >= 0, not %d", raw.Workers)
		}
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("log_level") {
		l, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
		cfg.LogLevel = l
	}
	if meta.IsDefined("cache_size") {
		if raw.CacheSize <= 0 {
			return Config{}, fmt.Errorf("cache_size must be > 0, not %d", raw.CacheSize)
		}
		cfg.CacheSize = raw.CacheSize
	}
	for i, c := range raw.Computes {
		c.Name = strings.TrimSpace(c.Name)
		c.ID = strings.TrimSpace(c.ID)
		if c.Name == "" {
			return Config{}, fmt.Errorf("compute %d has no name", i)
		}
		if _, err := compute.Lookup(c.Name); err != nil {
			return Config{}, fmt.Errorf("compute %d: %w", i, err)
		}
		cfg.Computes = append(cfg.Computes, c)
	}
	return cfg, nil
}

// Request returns the compute request for c.
func (c Compute) Request() compute.Request {
	return compute.Request{
		Name: c.Name,
		ID:   c.ID,
		Params: compute.Params{
			EnergySrc: c.EnergySrc,
			OptStep:   c.OptStep,
			SeriesID:  c.SeriesID,
			Unit:      c.Unit,
			InfoName:  c.InfoName,
		},
	}
}

// Requests returns the requests for all the computes in cfg, in order.
func (cfg Config) Requests() []compute.Request {
	ret := make([]compute.Request, 0, len(cfg.Computes))
	for _, c := range cfg.Computes {
		ret = append(ret, c.Request())
	}
	return ret
}

// Logger returns a logger that writes to w, in human-readable form, at the level in cfg.
func (cfg Config) Logger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(cfg.LogLevel).With().Timestamp().Logger()
}

// Options returns the options for a compute.Engine set up as cfg says, logging to log.
func (cfg Config) Options(log zerolog.Logger) []compute.Option {
	return []compute.Option{
		compute.WithWorkers(cfg.Workers),
		compute.WithCacheSize(cfg.CacheSize),
		compute.WithLogger(log),
	}
}
