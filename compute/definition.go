/*
 * definition.go, part of atsim.
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
	"strings"
)

// Definition types
const (
	TypeCompute  = "compute"
	TypeSeriesID = "series_id"
)

// Params are the parameters a compute can take. Each compute uses only some of them,
// the rest stay at their zero values.
type Params struct {
	EnergySrc string      //energy key in the simulation results, i.e. final_energy
	OptStep   interface{} //optimisation step to take energies from. nil for "the whole thing". Must be an integer.
	SeriesID  []string    //series names or variable IDs used to pair bulk and bicrystal supercells
	Unit      string      //for GB energies: atsim.UnitJPerM2 or eV/A^2
	InfoName  string      //for gamma_surface_info, the grid quantity to extract
	ColID     string      //for series indexes, the series the index is read from
}

func (p Params) key() string {
	return fmt.Sprintf("%s|%#v|%q|%s|%s|%s", p.EnergySrc, normInt(p.OptStep), p.SeriesID, p.Unit, p.InfoName, p.ColID)
}

// normInt converts integer values of any type to int64, so the same step given
// as an int or, i.e. from a TOML file, as an int64, is the same parameter.
func normInt(v interface{}) interface{} {
	if i, ok := asInt(v); ok {
		return int64(i)
	}
	return v
}

// Definition is a compute, or a series index, with a given set of parameters.
// Two definitions are the same if all their fields but Vals and Result are the same.
type Definition struct {
	Type   string //TypeCompute or TypeSeriesID
	Name   string //registry name of the compute, or name of the series index
	Kind   Kind
	ID     string //distinguishes definitions with different parameters. Empty if not included.
	Params Params

	Vals   []interface{} //one value per simulation of the batch. nil if not included.
	Result interface{}   //whole-batch result, for computes that produce one (master_gamma).
}

// Key returns a string which is the same for two definitions if and only if they
// are the same definition.
func (d *Definition) Key() string {
	return strings.Join([]string{d.Type, d.Name, d.Kind.String(), d.ID, d.Params.key()}, "|")
}

// Equal returns true if d and o are the same definition. Values are not compared.
func (d *Definition) Equal(o *Definition) bool {
	return d.Key() == o.Key()
}

// Matches returns true if d is the definition described by the query q.
// An empty ID in the query matches any ID.
func (d *Definition) Matches(q *Definition) bool {
	if q.ID != "" && q.ID != d.ID {
		return false
	}
	return d.Type == q.Type && d.Name == q.Name && d.Kind == q.Kind && d.Params.key() == q.Params.key()
}

// Clone returns a copy of d. The Vals slice is copied, the values themselves are not.
func (d *Definition) Clone() *Definition {
	r := *d
	if d.Vals != nil {
		r.Vals = make([]interface{}, len(d.Vals))
		copy(r.Vals, d.Vals)
	}
	if d.Params.SeriesID != nil {
		r.Params.SeriesID = append([]string(nil), d.Params.SeriesID...)
	}
	return &r
}

func (d *Definition) String() string {
	if d.ID != "" && d.ID != d.Name {
		return fmt.Sprintf("%s(%s)", d.Name, d.ID)
	}
	return d.Name
}

// Definitions of computes which do not need to be parameterised.
// They always carry their ID.
func predefined(k Kind) Definition {
	return Definition{Type: TypeCompute, Name: k.String(), Kind: k, ID: k.String()}
}

// Series indexes that place a simulation of a gamma surface scan in
// its common series info.
const (
	SeriesCSIIdx   = "csi_idx"
	SeriesGridIdx  = "grid_idx"
	SeriesPointIdx = "point_idx"
	RelativeShift  = "relative_shift"
)

func seriesIndex(name string, incID bool) Definition {
	d := Definition{Type: TypeSeriesID, Name: name, Kind: SeriesIndex, Params: Params{ColID: RelativeShift}}
	if incID {
		d.ID = name
	}
	return d
}
