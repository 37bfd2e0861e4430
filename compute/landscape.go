/*
 * landscape.go, part of atsim.
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
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/rmera/atsim"
	"github.com/rmera/atsim/grid"
)

// landscapeJSON is the encoded form of a Landscape. JSON has neither float
// map keys nor NaN, so energies are keyed by the vacuum written as text,
// and non-finite values are null.
type landscapeJSON struct {
	X          *grid.Matrix            `json:"X"`
	Y          *grid.Matrix            `json:"Y"`
	XYFrac     [2]*grid.Matrix         `json:"XY_frac"`
	E          map[string]*grid.Matrix `json:"E"`
	Vacs       []float64               `json:"vacs"`
	EMin       *grid.Matrix            `json:"E_min"`
	VacMin     *grid.Matrix            `json:"vac_min"`
	Fits       [][3]*float64           `json:"fits"`
	EMinFlat   []*float64              `json:"E_min_flat"`
	VacMinFlat []*float64              `json:"vac_min_flat"`
}

func vacKey(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func fromNullable(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func nullables(s []float64) []*float64 {
	ret := make([]*float64, len(s))
	for i, v := range s {
		ret[i] = nullable(v)
	}
	return ret
}

func fromNullables(s []*float64) []float64 {
	ret := make([]float64, len(s))
	for i, p := range s {
		ret[i] = fromNullable(p)
	}
	return ret
}

// MarshalJSON encodes the landscape. Non-finite values are encoded as null.
func (L *Landscape) MarshalJSON() ([]byte, error) {
	j := landscapeJSON{
		X:          L.X,
		Y:          L.Y,
		XYFrac:     L.XYFrac,
		E:          make(map[string]*grid.Matrix, len(L.E)),
		Vacs:       L.Vacs,
		EMin:       L.EMin,
		VacMin:     L.VacMin,
		Fits:       make([][3]*float64, len(L.Fits)),
		EMinFlat:   nullables(L.EMinFlat),
		VacMinFlat: nullables(L.VacMinFlat),
	}
	for v, m := range L.E {
		j.E[vacKey(v)] = m
	}
	for i, f := range L.Fits {
		for k := range f {
			j.Fits[i][k] = nullable(f[k])
		}
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes a landscape encoded by MarshalJSON. Nulls become NaN.
func (L *Landscape) UnmarshalJSON(b []byte) error {
	var j landscapeJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*L = Landscape{
		X:          j.X,
		Y:          j.Y,
		XYFrac:     j.XYFrac,
		E:          make(map[float64]*grid.Matrix, len(j.E)),
		EMin:       j.EMin,
		VacMin:     j.VacMin,
		Fits:       make([][3]float64, len(j.Fits)),
		EMinFlat:   fromNullables(j.EMinFlat),
		VacMinFlat: fromNullables(j.VacMinFlat),
	}
	for k, m := range j.E {
		v, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return atsim.Errorf(atsim.ErrInvalidArgument, "Landscape.UnmarshalJSON", "boundary vacuum %q is not a number", k)
		}
		L.E[v] = m
		L.Vacs = append(L.Vacs, v)
	}
	sort.Float64s(L.Vacs)
	for i, f := range j.Fits {
		for k := range f {
			L.Fits[i][k] = fromNullable(f[k])
		}
	}
	return nil
}
