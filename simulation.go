/*
 * simulation.go, part of atsim.
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

package atsim

import (
	v3 "github.com/rmera/atsim/v3"
)

// Simulation methods
const (
	MethodCASTEP = "castep"
	MethodLAMMPS = "lammps"
)

// Canonical supercell types
const (
	Bicrystal = "bicrystal"
	Bulk      = "bulk"
	Surface   = "surface"
)

// Legacy base structure types, used by simulations generated before the
// structures carried their own metadata.
const (
	LegacyCSLBicrystal        = "CSLBicrystal"
	LegacyCSLBulkBicrystal    = "CSLBulkBicrystal"
	LegacyCSLSurfaceBicrystal = "CSLSurfaceBicrystal"
	LegacyBulkCrystal         = "BulkCrystal"
)

var legacySupercellTypes = map[string]string{
	LegacyCSLBicrystal:        Bicrystal,
	LegacyCSLBulkBicrystal:    Bulk,
	LegacyCSLSurfaceBicrystal: Surface,
	LegacyBulkCrystal:         Bulk,
}

// Meta holds the metadata a supercell carries about itself.
type Meta struct {
	SupercellType []string //The first element is the canonical type
}

// Structure is the supercell of a simulation.
type Structure struct {
	NumAtoms           int
	BoundaryArea       float64    //Area of the grain boundary, A^2
	BoundaryVac        float64    //Vacuum added at the boundary, A
	BicrystalThickness float64    //A
	AtomsGBDist        []float64  //Initial distance of each atom from the boundary
	NUnit              *v3.Matrix //Boundary-normal unit vector(s), one per row
	Meta               *Meta      //nil for legacy simulations
}

// Results are the parsed outputs of a simulation.
type Results struct {
	Energies map[string][]float64 //energy sequences, one value per step, keyed by source (i.e. final_energy)
	Atoms    []*v3.Matrix         //LAMMPS: atom position snapshots
	GeomIons []*v3.Matrix         //CASTEP: ionic positions at each geometry step
}

// Simulation is a single, already loaded, atomistic simulation.
// atsim never modifies it.
type Simulation struct {
	ID                string
	Method            string //castep or lammps
	BaseStructureType string //Legacy, only used if the structure has no Meta
	Structure         *Structure
	Results           Results
}

// IsBicrystal returns true if the simulation supercell represents a bicrystal.
// For simulations without structure metadata, the legacy base structure type is checked.
func (S *Simulation) IsBicrystal() bool {
	if S.Structure != nil && S.Structure.Meta != nil {
		return isInString(S.Structure.Meta.SupercellType, Bicrystal)
	}
	return S.BaseStructureType == LegacyCSLBicrystal
}

// SupercellType returns the canonical type (bicrystal, bulk or surface) of the supercell.
func (S *Simulation) SupercellType() (string, error) {
	if S.Structure != nil && S.Structure.Meta != nil {
		if len(S.Structure.Meta.SupercellType) == 0 {
			return "", Errorf(ErrInvalidArgument, "SupercellType", "simulation %q has empty supercell type metadata", S.ID)
		}
		return S.Structure.Meta.SupercellType[0], nil
	}
	t, ok := legacySupercellTypes[S.BaseStructureType]
	if !ok {
		return "", Errorf(ErrInvalidArgument, "SupercellType", "simulation %q has unknown base structure type %q", S.ID, S.BaseStructureType)
	}
	return t, nil
}

// FinalPositions returns the last recorded atomic positions of the simulation,
// which come from a different place in the results depending on the method.
func (S *Simulation) FinalPositions() (*v3.Matrix, error) {
	var snaps []*v3.Matrix
	switch S.Method {
	case MethodLAMMPS:
		snaps = S.Results.Atoms
	case MethodCASTEP:
		snaps = S.Results.GeomIons
	default:
		return nil, Errorf(ErrInvalidArgument, "FinalPositions", "unknown simulation method %q", S.Method)
	}
	if len(snaps) == 0 || snaps[len(snaps)-1] == nil {
		return nil, Errorf(ErrInvalidArgument, "FinalPositions", "simulation %q has no recorded positions", S.ID)
	}
	return snaps[len(snaps)-1], nil
}
