/*
 * gamma.go, part of atsim.
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
	"math"
	"sort"

	"github.com/rmera/atsim/grid"
	"gonum.org/v1/gonum/mat"
)

// GammaFit is the quadratic fit of the GB energy against the boundary vacuum
// at one point of a gamma surface. Points without a fit are all NaN.
type GammaFit struct {
	EMin   float64    //energy at the minimum of the fit
	VacMin float64    //boundary vacuum at the minimum of the fit
	Coeffs [3]float64 //a, b, c in a*vac^2 + b*vac + c
}

func nanFit() GammaFit {
	n := math.NaN()
	return GammaFit{EMin: n, VacMin: n, Coeffs: [3]float64{n, n, n}}
}

// Landscape is the whole-batch result of master_gamma. Grids are indexed
// by the (row, column) of the relative shift.
type Landscape struct {
	X, Y   *grid.Matrix             //standard basis coordinates of each grid point
	XYFrac [2]*grid.Matrix          //fractional coordinates of each grid point
	E      map[float64]*grid.Matrix //GB energies for each boundary vacuum
	Vacs   []float64                //keys of E, sorted

	EMin, VacMin *grid.Matrix //minima of the fits at each grid point

	//per simulation. Only the first simulation found at each grid point
	//carries the fit of the point, the rest are NaN.
	Fits       [][3]float64
	EMinFlat   []float64
	VacMinFlat []float64
}

// fitQuadratic fits y = a*x^2 + b*x + c by least squares and returns a, b, c.
func fitQuadratic(x, y []float64) ([3]float64, error) {
	var ret [3]float64
	V := mat.NewDense(len(x), 3, nil)
	for i, v := range x {
		V.Set(i, 0, v*v)
		V.Set(i, 1, v)
		V.Set(i, 2, 1)
	}
	var c mat.VecDense
	if err := c.SolveVec(V, mat.NewVecDense(len(y), append([]float64(nil), y...))); err != nil {
		return ret, err
	}
	for i := range ret {
		ret[i] = c.AtVec(i)
	}
	return ret, nil
}

// minimum returns the stationary point of the quadratic with the given coefficients, where
// its derivative, 2*a*x + b, is zero, and the value of the quadratic there.
func minimum(co [3]float64) (x, y float64, ok bool) {
	if co[0] == 0 {
		return 0, 0, false
	}
	x = -co[1] / (2 * co[0])
	return x, co[0]*x*x + co[1]*x + co[2], true
}

// masterGamma builds the GB energy landscape of a gamma surface scan, where each point
// of the grid of relative shifts has been computed at several boundary vacuums. At each
// grid point, with at least 3 energies, the energy is fitted to a quadratic in the
// boundary vacuum, and the minimum of the fit is taken.
func masterGamma(env *Env, deps []*Definition) error {
	self := deps[len(deps)-1]
	n := env.Store.NumSims()
	egb := vals(deps, GBEnergy.String())
	vacs := vals(deps, GBBoundaryVac.String())
	rows := infoVals(deps, InfoRowIdx)
	cols := infoVals(deps, InfoColIdx)
	xstd, ystd := infoVals(deps, InfoXStdVals), infoVals(deps, InfoYStdVals)
	xfrac, yfrac := infoVals(deps, InfoXFracVals), infoVals(deps, InfoYFracVals)
	shapes := infoVals(deps, InfoGridShape)

	fits := make([]interface{}, n)
	L := &Landscape{E: map[float64]*grid.Matrix{}, Fits: make([][3]float64, n), EMinFlat: make([]float64, n), VacMinFlat: make([]float64, n)}
	for i := range fits {
		f := nanFit()
		fits[i] = f
		L.Fits[i] = f.Coeffs
		L.EMinFlat[i] = f.EMin
		L.VacMinFlat[i] = f.VacMin
	}
	var shape [2]int
	found := false
	for i := 0; i < n; i++ {
		if at(egb, i) == nil {
			continue
		}
		if s, ok := at(shapes, i).([2]int); ok {
			shape = s
			found = true
			break
		}
	}
	if !found {
		env.Log.Warn().Msg("master_gamma: no GB energies on a grid, the landscape is empty")
		self.Vals = fits
		self.Result = L
		return nil
	}
	r, c := shape[0], shape[1]
	L.X, L.Y = grid.NaNs(r, c), grid.NaNs(r, c)
	L.XYFrac = [2]*grid.Matrix{grid.NaNs(r, c), grid.NaNs(r, c)}
	L.EMin, L.VacMin = grid.NaNs(r, c), grid.NaNs(r, c)
	first := make([]int, r*c) //first simulation at each point, row-major
	for i := range first {
		first[i] = -1
	}
	skipped := 0
	for i := 0; i < n; i++ {
		e, ok := asFloat(at(egb, i))
		if !ok {
			continue
		}
		ri, ok1 := asInt(at(rows, i))
		ci, ok2 := asInt(at(cols, i))
		vac, ok3 := asFloat(at(vacs, i))
		if !ok1 || !ok2 || !ok3 || math.IsNaN(vac) || math.IsInf(vac, 0) || L.X.Check(ri, ci) != nil {
			skipped++
			continue
		}
		if _, ok := L.E[vac]; !ok {
			L.E[vac] = grid.NaNs(r, c)
			L.Vacs = append(L.Vacs, vac)
		}
		L.E[vac].Set(ri, ci, e)
		if first[ri*c+ci] < 0 {
			first[ri*c+ci] = i
			setIfNumber(L.X, ri, ci, at(xstd, i))
			setIfNumber(L.Y, ri, ci, at(ystd, i))
			setIfNumber(L.XYFrac[0], ri, ci, at(xfrac, i))
			setIfNumber(L.XYFrac[1], ri, ci, at(yfrac, i))
		}
	}
	if skipped > 0 {
		env.Log.Warn().Int("simulations", skipped).Msg("master_gamma: GB energies without grid point or boundary vacuum were skipped")
	}
	sort.Float64s(L.Vacs)
	for ri := 0; ri < r; ri++ {
		for ci := 0; ci < c; ci++ {
			var x, y []float64
			for _, v := range L.Vacs {
				if e := L.E[v].At(ri, ci); !math.IsNaN(e) && !math.IsInf(e, 0) {
					x = append(x, v)
					y = append(y, e)
				}
			}
			if len(x) < 3 {
				continue
			}
			co, err := fitQuadratic(x, y)
			if err != nil {
				env.Log.Warn().Err(err).Int("row", ri).Int("col", ci).Msg("master_gamma: fit failed")
				continue
			}
			vmin, emin, ok := minimum(co)
			if !ok {
				continue
			}
			L.EMin.Set(ri, ci, emin)
			L.VacMin.Set(ri, ci, vmin)
			if i := first[ri*c+ci]; i >= 0 {
				fits[i] = GammaFit{EMin: emin, VacMin: vmin, Coeffs: co}
				L.Fits[i] = co
				L.EMinFlat[i] = emin
				L.VacMinFlat[i] = vmin
			}
		}
	}
	self.Vals = fits
	self.Result = L
	return nil
}

func setIfNumber(M *grid.Matrix, r, c int, v interface{}) {
	if f, ok := asFloat(v); ok {
		M.Set(r, c, f)
	}
}
