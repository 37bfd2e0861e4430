/*
 * engine.go, part of atsim.
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

package compute

import (
	"context"
	"time"

	"github.com/rmera/atsim"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultCacheSize is the number of dependency resolutions an Engine remembers by default.
const DefaultCacheSize = 256

// Env is what a compute function sees of the batch being evaluated.
type Env struct {
	Store    *Store
	Series   CommonSeriesInfo
	Log      zerolog.Logger
	resolver *Resolver
}

// NewEnv returns an Env for the given store and common series info, with its own
// resolver and a logger that discards everything.
func NewEnv(s *Store, csi CommonSeriesInfo) *Env {
	r, _ := NewResolver(DefaultCacheSize)
	return &Env{Store: s, Series: csi, Log: zerolog.Nop(), resolver: r}
}

// depends returns the stored variables the compute name, with parameters p, needs,
// in the order given by Resolve. The last one is the stored version of the compute itself,
// found without regard to its ID.
func (e *Env) depends(name string, p Params) ([]*Definition, error) {
	return e.find(name, p, true)
}

// prerequisites is like depends, but doesn't include the compute itself.
func (e *Env) prerequisites(name string, p Params) ([]*Definition, error) {
	return e.find(name, p, false)
}

func (e *Env) find(name string, p Params, self bool) ([]*Definition, error) {
	defs, err := e.resolver.Resolve(name, ResolveOptions{}, p)
	if err != nil {
		return nil, atsim.ErrDecorate(err, "depends")
	}
	if !self {
		defs = defs[:len(defs)-1]
	}
	ret := make([]*Definition, len(defs))
	for i := range defs {
		v := e.Store.Find(&defs[i])
		if v == nil {
			return nil, atsim.Errorf(atsim.ErrInvalidArgument, "depends", "variable %s, needed by %s, has not been defined", defs[i].String(), name)
		}
		ret[i] = v
	}
	return ret, nil
}

// Request asks for a compute to be evaluated.
type Request struct {
	Name   string
	ID     string //optional, defaults to Name
	Params Params
}

// Engine evaluates computes over batches of simulations.
type Engine struct {
	log       zerolog.Logger
	workers   int
	cacheSize int
	resolver  *Resolver
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger of the Engine. By default, nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithWorkers sets how many simulations are evaluated at the same time by
// single-simulation computes. 0 or 1 means one at a time.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithCacheSize sets the size of the resolver cache.
func WithCacheSize(n int) Option {
	return func(e *Engine) { e.cacheSize = n }
}

// NewEngine returns a new Engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{log: zerolog.Nop(), workers: 1, cacheSize: DefaultCacheSize}
	for _, o := range opts {
		o(e)
	}
	r, err := NewResolver(e.cacheSize)
	if err != nil {
		return nil, atsim.ErrDecorate(err, "NewEngine")
	}
	e.resolver = r
	return e, nil
}

// Resolver returns the resolver used by the Engine.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Define resolves each request and adds the resulting definitions to the variables of s,
// skipping the ones already there. It returns the stored definition of each request.
func (e *Engine) Define(s *Store, reqs ...Request) ([]*Definition, error) {
	ret := make([]*Definition, 0, len(reqs))
	for _, r := range reqs {
		defs, err := e.resolver.Resolve(r.Name, ResolveOptions{IncludeID: true, IncludeVals: true, ID: r.ID}, r.Params)
		if err != nil {
			return nil, atsim.ErrDecorate(err, "Define")
		}
		var last *Definition
		for i := range defs {
			last = s.Add(&defs[i])
		}
		ret = append(ret, last)
	}
	return ret, nil
}

// Run defines the requested computes in s, and evaluates, in order, every variable of s
// that has not been evaluated yet. sims must be the simulations of the batch, in the same
// order as in s. The first error aborts the batch.
func (e *Engine) Run(ctx context.Context, s *Store, sims []*atsim.Simulation, csi CommonSeriesInfo, reqs ...Request) error {
	n := s.NumSims()
	if len(sims) != n {
		return atsim.Errorf(atsim.ErrInvalidArgument, "Run", "%d simulations given for a batch of %d", len(sims), n)
	}
	if _, err := e.Define(s, reqs...); err != nil {
		return atsim.ErrDecorate(err, "Run")
	}
	env := &Env{Store: s, Series: csi, Log: e.log, resolver: e.resolver}
	e.log.Info().Int("simulations", n).Int("variables", len(s.Variables)).Msg("batch started")
	start := time.Now()
	for _, d := range s.Variables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Vals != nil && len(d.Vals) == n {
			continue //already evaluated
		}
		if err := e.evaluate(ctx, env, d, sims); err != nil {
			e.log.Error().Err(err).Str("compute", d.Name).Str("id", d.ID).Msg("compute failed")
			return atsim.ErrDecorate(err, "Run")
		}
	}
	e.log.Info().Dur("took", time.Since(start)).Msg("batch finished")
	return nil
}

func (e *Engine) evaluate(ctx context.Context, env *Env, d *Definition, sims []*atsim.Simulation) error {
	start := time.Now()
	if d.Type == TypeSeriesID {
		v := make([]interface{}, len(sims))
		for i := range v {
			v[i] = env.Store.SeriesField(d.Params.ColID, d.Name, i)
		}
		d.Vals = v
		e.log.Debug().Str("series_id", d.Name).Str("col_id", d.Params.ColID).Msg("series index read")
		return nil
	}
	en, ok := registry[d.Name]
	if !ok {
		return atsim.Errorf(atsim.ErrUnknownCompute, "evaluate", "compute %q is not allowed", d.Name)
	}
	if en.single != nil {
		if err := e.runSingle(ctx, env, d, en.single, sims); err != nil {
			return err
		}
	} else {
		deps, err := env.depends(d.Name, d.Params)
		if err != nil {
			return err
		}
		deps[len(deps)-1] = d //the query above ignores IDs
		if err := en.multi(env, deps); err != nil {
			return err
		}
	}
	e.log.Debug().Str("compute", d.Name).Str("id", d.ID).Bool("multi", en.multi != nil).Dur("took", time.Since(start)).Msg("compute evaluated")
	return nil
}

// runSingle evaluates f for each simulation. Each evaluation writes only its own element of the results,
// which are stored in d only when all of them are done.
func (e *Engine) runSingle(ctx context.Context, env *Env, d *Definition, f SingleFunc, sims []*atsim.Simulation) error {
	v := make([]interface{}, len(sims))
	if e.workers <= 1 {
		for i, sim := range sims {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := f(env, sim, i, d.Params)
			if err != nil {
				return atsim.ErrDecorate(err, d.Name)
			}
			v[i] = r
		}
		d.Vals = v
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, sim := range sims {
		i, sim := i, sim
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := f(env, sim, i, d.Params)
			if err != nil {
				return atsim.ErrDecorate(err, d.Name)
			}
			v[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	d.Vals = v
	return nil
}
