/*
 * gammainfo.go, part of atsim.
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

// Quantities gamma_surface_info can extract from the grid point of a simulation.
const (
	InfoRowIdx      = "row_idx"
	InfoColIdx      = "col_idx"
	InfoXStdVals    = "x_std_vals"
	InfoYStdVals    = "y_std_vals"
	InfoXFracVals   = "x_frac_vals"
	InfoYFracVals   = "y_frac_vals"
	InfoXNumDenVals = "x_num_den_vals"
	InfoYNumDenVals = "y_num_den_vals"
	InfoGridShape   = "grid_shape"
)

// InfoNames lists all the quantities gamma_surface_info knows.
var InfoNames = []string{
	InfoRowIdx, InfoColIdx, InfoXStdVals, InfoYStdVals, InfoXFracVals,
	InfoYFracVals, InfoXNumDenVals, InfoYNumDenVals, InfoGridShape,
}

// pointInfo returns the quantity info of the point p of the grid g, or nil if
// p is not in the grid.
func pointInfo(g *GammaGrid, p int, info string) interface{} {
	if p < 0 || p >= g.Len() {
		return nil
	}
	fat := func(s []float64) interface{} {
		if p >= len(s) {
			return nil
		}
		return s[p]
	}
	switch info {
	case InfoGridShape:
		return g.Shape
	case InfoRowIdx:
		return g.RowIdx[p]
	case InfoColIdx:
		if p >= len(g.ColIdx) {
			return nil
		}
		return g.ColIdx[p]
	case InfoXStdVals:
		return fat(g.PointsStd[0])
	case InfoYStdVals:
		return fat(g.PointsStd[1])
	case InfoXFracVals:
		return fat(g.PointsFrac[0])
	case InfoYFracVals:
		return fat(g.PointsFrac[1])
	case InfoXNumDenVals:
		return fat(g.PointsNumDen[0])
	case InfoYNumDenVals:
		return fat(g.PointsNumDen[1])
	}
	return nil
}

// gammaSurfaceInfo places each simulation of a gamma surface scan in the grid of relative shifts
// of its session, using the csi_idx, grid_idx and point_idx indexes, and extracts one quantity of that
// grid point. Simulations that can't be placed get nil.
func gammaSurfaceInfo(env *Env, deps []*Definition) error {
	self := deps[len(deps)-1]
	info := self.Params.InfoName
	if !isInString(InfoNames, info) {
		return atsim.Errorf(atsim.ErrInvalidArgument, "gamma_surface_info", "info_name %q not understood. Must be one of: %v", info, InfoNames)
	}
	csis := vals(deps, SeriesCSIIdx)
	grids := vals(deps, SeriesGridIdx)
	points := vals(deps, SeriesPointIdx)
	ret := make([]interface{}, env.Store.NumSims())
	missing := 0
	for i, session := range env.Store.SessionIDIdx {
		c, ok1 := asInt(at(csis, i))
		gi, ok2 := asInt(at(grids, i))
		p, ok3 := asInt(at(points, i))
		var g *GammaGrid
		if ok1 && ok2 {
			g = env.Series.Grid(session, c, gi)
		}
		if g == nil || !ok3 {
			missing++
			continue
		}
		ret[i] = pointInfo(g, p, info)
		if ret[i] == nil {
			missing++
		}
	}
	if missing > 0 {
		env.Log.Warn().Str("info_name", info).Int("simulations", missing).Msg("gamma_surface_info: simulations not found in any grid")
	}
	self.Vals = ret
	return nil
}
