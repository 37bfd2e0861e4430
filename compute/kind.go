/*
 * kind.go, part of atsim.
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
	"github.com/rmera/atsim"
)

// Kind is one of the computes atsim knows about.
type Kind int

const (
	NumAtoms Kind = iota
	SupercellType
	Energy
	EnergyPerAtom
	GBArea
	GBBoundaryVac
	GBThickness
	AtomsGBDistInitial
	AtomsGBDistFinal
	AtomsGBDistChange
	GBEnergy
	GammaSurfaceInfo
	MasterGamma
	SeriesIndex //not a compute: an index read from a series of the batch
)

var kindNames = [...]string{
	NumAtoms:           "num_atoms",
	SupercellType:      "supercell_type",
	Energy:             "energy",
	EnergyPerAtom:      "energy_per_atom",
	GBArea:             "gb_area",
	GBBoundaryVac:      "gb_boundary_vac",
	GBThickness:        "gb_thickness",
	AtomsGBDistInitial: "atoms_gb_dist_initial",
	AtomsGBDistFinal:   "atoms_gb_dist_final",
	AtomsGBDistChange:  "atoms_gb_dist_change",
	GBEnergy:           "gb_energy",
	GammaSurfaceInfo:   "gamma_surface_info",
	MasterGamma:        "master_gamma",
	SeriesIndex:        "series_index",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// SingleFunc computes the value of a compute for the simulation sim, which is the
// idx-th in the batch. A nil value means the quantity doesn't apply to sim.
type SingleFunc func(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error)

// MultiFunc computes a compute over the whole batch. deps are the definitions
// returned by Resolve for the compute, as stored in env.Store. The last one is
// the compute itself, and it is where the results are written.
type MultiFunc func(env *Env, deps []*Definition) error

type entry struct {
	kind   Kind
	single SingleFunc
	multi  MultiFunc
}

// registry maps compute names to their evaluation functions.
// It is filled in init, as the functions themselves resolve dependencies.
var registry = map[string]entry{}

func register(k Kind, s SingleFunc, m MultiFunc) {
	if _, ok := registry[k.String()]; ok {
		panic("atsim/compute: compute registered twice: " + k.String())
	}
	registry[k.String()] = entry{kind: k, single: s, multi: m}
}

func init() {
	register(NumAtoms, numAtoms, nil)
	register(SupercellType, supercellType, nil)
	register(Energy, energy, nil)
	register(EnergyPerAtom, energyPerAtom, nil)
	register(GBArea, gbArea, nil)
	register(GBBoundaryVac, gbBoundaryVac, nil)
	register(GBThickness, gbThickness, nil)
	register(AtomsGBDistInitial, atomsGBDistInitial, nil)
	register(AtomsGBDistFinal, atomsGBDistFinal, nil)
	register(AtomsGBDistChange, atomsGBDistChange, nil)

	register(GBEnergy, nil, gbEnergy)
	register(GammaSurfaceInfo, nil, gammaSurfaceInfo)
	register(MasterGamma, nil, masterGamma)
}

// Lookup returns the Kind of the compute with the given name, or an error
// of kind atsim.ErrUnknownCompute.
func Lookup(name string) (Kind, error) {
	e, ok := registry[name]
	if !ok {
		return 0, atsim.Errorf(atsim.ErrUnknownCompute, "Lookup", "compute %q is not allowed", name)
	}
	return e.kind, nil
}

// IsMulti returns true if the named compute needs the whole batch.
func IsMulti(name string) bool {
	return registry[name].multi != nil
}

// Names returns the names of all registered computes.
func Names() []string {
	ret := make([]string, 0, len(registry))
	for k := NumAtoms; k < SeriesIndex; k++ {
		if _, ok := registry[k.String()]; ok {
			ret = append(ret, k.String())
		}
	}
	return ret
}
