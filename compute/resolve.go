/*
 * resolve.go, part of atsim.
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
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rmera/atsim"
)

// ResolveOptions control what Resolve puts in the definitions.
type ResolveOptions struct {
	IncludeID   bool   //set the ID of each definition
	IncludeVals bool   //give each definition an empty, non-nil Vals
	ID          string //ID for the requested compute. If empty, its name is used.
}

// the gamma surface quantities master_gamma needs, in order.
var masterGammaInfos = []string{
	InfoRowIdx, InfoColIdx, InfoXStdVals, InfoYStdVals, InfoXFracVals, InfoYFracVals, InfoGridShape,
}

// Resolve returns the definitions of the compute name with parameters p, preceded by the
// definitions of everything it depends on, in the order they must be evaluated.
// No definition appears twice. Fails with atsim.ErrUnknownCompute if name is not a compute.
func Resolve(name string, opts ResolveOptions, p Params) ([]Definition, error) {
	var out []Definition
	if err := resolveInto(&out, name, opts, p); err != nil {
		return nil, atsim.ErrDecorate(err, "Resolve")
	}
	for i := range out {
		if opts.IncludeVals && out[i].Vals == nil {
			out[i].Vals = []interface{}{}
		} else if !opts.IncludeVals {
			out[i].Vals = nil
		}
	}
	return out, nil
}

// appendUnique appends each of defs to out, unless an equal definition is already there.
func appendUnique(out *[]Definition, defs ...Definition) {
	for _, d := range defs {
		dup := false
		for i := range *out {
			if (*out)[i].Equal(&d) {
				dup = true
				break
			}
		}
		if !dup {
			*out = append(*out, d)
		}
	}
}

func resolveInto(out *[]Definition, name string, opts ResolveOptions, p Params) error {
	k, err := Lookup(name)
	if err != nil {
		return err
	}
	d := Definition{Type: TypeCompute, Name: name, Kind: k}
	if opts.IncludeID {
		d.ID = name
		if opts.ID != "" {
			d.ID = opts.ID
		}
	}
	//dependencies never get the requested ID.
	sub := ResolveOptions{IncludeID: opts.IncludeID, IncludeVals: opts.IncludeVals}
	energyParams := Params{EnergySrc: p.EnergySrc, OptStep: p.OptStep}

	switch k {
	case GBEnergy:
		d.Params = Params{EnergySrc: p.EnergySrc, OptStep: p.OptStep, SeriesID: p.SeriesID, Unit: p.Unit}
		if err := resolveInto(out, Energy.String(), sub, energyParams); err != nil {
			return err
		}
		if err := resolveInto(out, NumAtoms.String(), sub, Params{}); err != nil {
			return err
		}
		appendUnique(out, predefined(GBArea), predefined(SupercellType))

	case EnergyPerAtom:
		d.Params = energyParams
		if err := resolveInto(out, NumAtoms.String(), sub, Params{}); err != nil {
			return err
		}
		if err := resolveInto(out, Energy.String(), sub, energyParams); err != nil {
			return err
		}

	case GammaSurfaceInfo:
		d.Params = Params{InfoName: p.InfoName}
		appendUnique(out,
			seriesIndex(SeriesCSIIdx, opts.IncludeID),
			seriesIndex(SeriesGridIdx, opts.IncludeID),
			seriesIndex(SeriesPointIdx, opts.IncludeID))

	case MasterGamma:
		d.Params = Params{EnergySrc: p.EnergySrc, OptStep: p.OptStep, SeriesID: p.SeriesID, Unit: p.Unit}
		if err := resolveInto(out, GBEnergy.String(), sub, d.Params); err != nil {
			return err
		}
		for _, info := range masterGammaInfos {
			if err := resolveInto(out, GammaSurfaceInfo.String(), sub, Params{InfoName: info}); err != nil {
				return err
			}
		}
		appendUnique(out, predefined(GBBoundaryVac))

	case Energy:
		//OptStep stays nil if not given.
		d.Params = energyParams

	case AtomsGBDistChange:
		appendUnique(out, predefined(AtomsGBDistInitial), predefined(AtomsGBDistFinal), predefined(SupercellType))
	}
	appendUnique(out, d)
	return nil
}

// Resolver is a Resolve with memory. Resolving is done often (some computes
// re-resolve their own dependencies for each simulation) and always gives
// the same result for the same arguments, so the results are kept in an LRU cache.
// A Resolver can be used concurrently.
type Resolver struct {
	cache *lru.Cache[string, []Definition]
}

// NewResolver returns a Resolver that remembers up to size results.
func NewResolver(size int) (*Resolver, error) {
	c, err := lru.New[string, []Definition](size)
	if err != nil {
		return nil, atsim.Errorf(atsim.ErrInvalidArgument, "NewResolver", "can't create resolver cache: %s", err.Error())
	}
	return &Resolver{cache: c}, nil
}

// Resolve is like the package-level Resolve. The returned definitions are
// always a fresh copy, so they can be modified.
func (r *Resolver) Resolve(name string, opts ResolveOptions, p Params) ([]Definition, error) {
	key := fmt.Sprintf("%s|%t|%t|%s|%s", name, opts.IncludeID, opts.IncludeVals, opts.ID, p.key())
	if defs, ok := r.cache.Get(key); ok {
		return cloneAll(defs), nil
	}
	defs, err := Resolve(name, opts, p)
	if err != nil {
		return nil, err
	}
	r.cache.Add(key, cloneAll(defs))
	return defs, nil
}

// Len returns the number of results currently remembered.
func (r *Resolver) Len() int {
	return r.cache.Len()
}

func cloneAll(defs []Definition) []Definition {
	ret := make([]Definition, len(defs))
	for i := range defs {
		ret[i] = *defs[i].Clone()
	}
	return ret
}
