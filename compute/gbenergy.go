/*
 * gbenergy.go, part of atsim.
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

// seriesTuples returns, for each simulation of the batch, the values of the given
// series. Each id is a series declared in the store or, failing that, the ID of
// a variable. With no ids, all simulations get the same tuple.
func seriesTuples(s *Store, ids []string) ([][]interface{}, error) {
	n := s.NumSims()
	cols := make([][]interface{}, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.SeriesColumn(id); ok {
			cols = append(cols, c)
			continue
		}
		v := s.FindByID(id)
		if v == nil {
			return nil, atsim.Errorf(atsim.ErrInvalidArgument, "seriesTuples", "%q is neither a series nor a variable ID", id)
		}
		cols = append(cols, v.Vals)
	}
	ret := make([][]interface{}, n)
	for i := range ret {
		if len(cols) == 0 {
			ret[i] = []interface{}{0}
			continue
		}
		ret[i] = make([]interface{}, len(cols))
		for j, c := range cols {
			ret[i][j] = at(c, i)
		}
	}
	return ret, nil
}

// gbEnergy computes the grain boundary energy of each bicrystal in the batch against
// the first bulk supercell with the same series values:
//
//	E_gb = (E_bicrystal - N_bicrystal/N_bulk * E_bulk) / (2 * A)
//
// The energy is in eV/Ang^2, or J/m^2 if so requested. Simulations which are not
// bicrystals, or have no bulk partner, get nil.
func gbEnergy(env *Env, deps []*Definition) error {
	self := deps[len(deps)-1]
	energy := vals(deps, Energy.String())
	natoms := vals(deps, NumAtoms.String())
	area := vals(deps, GBArea.String())
	stype := vals(deps, SupercellType.String())
	n := env.Store.NumSims()
	tuples, err := seriesTuples(env.Store, self.Params.SeriesID)
	if err != nil {
		return atsim.ErrDecorate(err, "gb_energy")
	}
	var gbs, bulks []int
	for i := 0; i < n; i++ {
		switch at(stype, i) {
		case atsim.Bicrystal:
			gbs = append(gbs, i)
		case atsim.Bulk:
			bulks = append(bulks, i)
		}
	}
	ret := make([]interface{}, n)
	for _, g := range gbs {
		b := -1
		for _, cand := range bulks {
			if sameTuple(tuples[g], tuples[cand]) {
				b = cand
				break
			}
		}
		if b < 0 {
			env.Log.Debug().Int("simulation", g).Msg("gb_energy: no matching bulk supercell")
			continue
		}
		egb, ok1 := asFloat(at(energy, g))
		ebulk, ok2 := asFloat(at(energy, b))
		if !ok1 || !ok2 {
			return atsim.Errorf(atsim.ErrInvalidArgument, "gb_energy", "simulations %d and %d need a single energy each. Set opt_step for multi-step energies", g, b)
		}
		ngb, ok1 := asFloat(at(natoms, g))
		nbulk, ok2 := asFloat(at(natoms, b))
		A, ok3 := asFloat(at(area, g))
		if !ok1 || !ok2 || !ok3 || nbulk == 0 || A == 0 {
			return atsim.Errorf(atsim.ErrInvalidArgument, "gb_energy", "missing atom counts or boundary area for simulations %d and %d", g, b)
		}
		e := (egb - ngb/nbulk*ebulk) / (2 * A)
		if self.Params.Unit == atsim.UnitJPerM2 {
			e *= atsim.EVPerAng2ToJPerM2
		}
		ret[g] = e
	}
	self.Vals = ret
	return nil
}
