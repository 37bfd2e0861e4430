/*
 * fixtures_test.go, part of atsim.
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
	"testing"

	"github.com/rmera/atsim"
	v3 "github.com/rmera/atsim/v3"
	"github.com/stretchr/testify/require"
)

func lammps(id, stype string, natoms int, energies ...float64) *atsim.Simulation {
	return &atsim.Simulation{
		ID:        id,
		Method:    atsim.MethodLAMMPS,
		Structure: &atsim.Structure{NumAtoms: natoms, Meta: &atsim.Meta{SupercellType: []string{stype}}},
		Results:   atsim.Results{Energies: map[string][]float64{FinalEnergy: energies}},
	}
}

func bicrystal(id string, natoms int, area, vac float64, energies ...float64) *atsim.Simulation {
	s := lammps(id, atsim.Bicrystal, natoms, energies...)
	s.Structure.BoundaryArea = area
	s.Structure.BoundaryVac = vac
	return s
}

// newStore returns a store for n simulations, all in the same session.
func newStore(n int) *Store {
	return &Store{SessionIDs: []string{"session"}, SessionIDIdx: make([]int, n)}
}

func vec(t *testing.T, data ...float64) *v3.Matrix {
	m, err := v3.NewMatrix(data)
	require.NoError(t, err)
	return m
}

func engine(t *testing.T, opts ...Option) *Engine {
	e, err := NewEngine(opts...)
	require.NoError(t, err)
	return e
}
