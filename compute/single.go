/*
 * single.go, part of atsim.
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
	"strings"

	"github.com/rmera/atsim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Energy sources
const (
	FinalEnergy  = "final_energy"
	FinalFEnergy = "final_fenergy"
	FinalZEnergy = "final_zenergy"
)

// energy sources each method can provide.
var allowedEnergySrcs = map[string][]string{
	atsim.MethodCASTEP: {FinalEnergy, FinalFEnergy, FinalZEnergy},
	atsim.MethodLAMMPS: {FinalEnergy},
}

func structure(sim *atsim.Simulation, caller string) (*atsim.Structure, error) {
	if sim.Structure == nil {
		return nil, atsim.Errorf(atsim.ErrInvalidArgument, caller, "simulation %q has no structure", sim.ID)
	}
	return sim.Structure, nil
}

func numAtoms(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	st, err := structure(sim, "num_atoms")
	if err != nil {
		return nil, err
	}
	return st.NumAtoms, nil
}

// supercellType is a compute, rather than a parameter of the simulation,
// for compatibility with simulations that predate structure metadata.
func supercellType(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	t, err := sim.SupercellType()
	if err != nil {
		return nil, atsim.ErrDecorate(err, "supercell_type")
	}
	return t, nil
}

// energy returns the energy from the source p.EnergySrc. If p.OptStep is
// given, it is the index of the optimisation step to take the energy from, negative
// values counting from the last step. Otherwise a single-step energy is returned as a number, and a
// multi-step one as the whole sequence.
func energy(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	allowed := allowedEnergySrcs[sim.Method]
	if !isInString(allowed, p.EnergySrc) {
		return nil, atsim.Errorf(atsim.ErrInvalidEnergySource, "energy", "Energy source: %q not available from %s output", p.EnergySrc, strings.ToUpper(sim.Method))
	}
	en, ok := sim.Results.Energies[p.EnergySrc]
	if !ok || len(en) == 0 {
		return nil, atsim.Errorf(atsim.ErrInvalidEnergySource, "energy", "simulation %q has no %q results", sim.ID, p.EnergySrc)
	}
	if p.OptStep == nil {
		if len(en) == 1 {
			return en[0], nil
		}
		return append([]float64(nil), en...), nil
	}
	step, ok := asInt(p.OptStep)
	if !ok {
		return nil, atsim.Errorf(atsim.ErrInvalidArgument, "energy", "`opt_step` must be an integer, not %T", p.OptStep)
	}
	i := step
	if i < 0 {
		i += len(en)
	}
	if i < 0 || i >= len(en) {
		return nil, atsim.Errorf(atsim.ErrInvalidArgument, "energy", "`opt_step` %d out of range for %d steps in simulation %q", step, len(en), sim.ID)
	}
	return en[i], nil
}

func energyPerAtom(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	deps, err := env.prerequisites(EnergyPerAtom.String(), p)
	if err != nil {
		return nil, atsim.ErrDecorate(err, "energy_per_atom")
	}
	n, ok := asFloat(at(vals(deps, NumAtoms.String()), idx))
	if !ok || n == 0 {
		return nil, atsim.Errorf(atsim.ErrInvalidArgument, "energy_per_atom", "no atom count for simulation %d", idx)
	}
	switch e := at(vals(deps, Energy.String()), idx).(type) {
	case float64:
		return e / n, nil
	case []float64:
		r := make([]float64, len(e))
		floats.ScaleTo(r, 1/n, e)
		return r, nil
	}
	return nil, atsim.Errorf(atsim.ErrInvalidArgument, "energy_per_atom", "no energy for simulation %d", idx)
}

// A supercell without a grain boundary has no boundary area, vacuum, thickness
// or distances to the boundary, so the following return nil for them.

func gbArea(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	if !sim.IsBicrystal() {
		return nil, nil
	}
	st, err := structure(sim, "gb_area")
	if err != nil {
		return nil, err
	}
	return st.BoundaryArea, nil
}

func gbBoundaryVac(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	if !sim.IsBicrystal() {
		return nil, nil
	}
	st, err := structure(sim, "gb_boundary_vac")
	if err != nil {
		return nil, err
	}
	return st.BoundaryVac, nil
}

func gbThickness(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	if !sim.IsBicrystal() {
		return nil, nil
	}
	st, err := structure(sim, "gb_thickness")
	if err != nil {
		return nil, err
	}
	return st.BicrystalThickness, nil
}

func atomsGBDistInitial(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	if !sim.IsBicrystal() {
		return nil, nil
	}
	st, err := structure(sim, "atoms_gb_dist_initial")
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), st.AtomsGBDist...), nil
}

// atomsGBDistFinal projects the final position of each atom on the boundary normal.
// If the structure has more than one normal vector, the projections on each are added.
func atomsGBDistFinal(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	if !sim.IsBicrystal() {
		return nil, nil
	}
	st, err := structure(sim, "atoms_gb_dist_final")
	if err != nil {
		return nil, err
	}
	if st.NUnit == nil {
		return nil, atsim.Errorf(atsim.ErrInvalidArgument, "atoms_gb_dist_final", "simulation %q has no boundary normal", sim.ID)
	}
	pos, err := sim.FinalPositions()
	if err != nil {
		return nil, atsim.ErrDecorate(err, "atoms_gb_dist_final")
	}
	var proj mat.Dense
	proj.Mul(pos.Dense, st.NUnit.Dense.T()) //atoms x normals
	r, _ := proj.Dims()
	ret := make([]float64, r)
	for k := range ret {
		ret[k] = floats.Sum(proj.RawRowView(k))
	}
	return ret, nil
}

func atomsGBDistChange(env *Env, sim *atsim.Simulation, idx int, p Params) (interface{}, error) {
	deps, err := env.prerequisites(AtomsGBDistChange.String(), Params{})
	if err != nil {
		return nil, atsim.ErrDecorate(err, "atoms_gb_dist_change")
	}
	if st, _ := at(vals(deps, SupercellType.String()), idx).(string); st != atsim.Bicrystal {
		return nil, nil
	}
	ini, ok1 := at(vals(deps, AtomsGBDistInitial.String()), idx).([]float64)
	fin, ok2 := at(vals(deps, AtomsGBDistFinal.String()), idx).([]float64)
	if !ok1 || !ok2 || len(ini) != len(fin) {
		return nil, atsim.Errorf(atsim.ErrInvalidArgument, "atoms_gb_dist_change", "initial and final distances of simulation %d don't match", idx)
	}
	ret := make([]float64, len(fin))
	floats.SubTo(ret, fin, ini)
	return ret, nil
}
