/*
 * series.go, part of atsim.
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

// GammaGrid is one grid of relative shifts of a gamma surface scan.
// The slices are indexed by flattened grid point.
type GammaGrid struct {
	RowIdx       []int
	ColIdx       []int
	Shape        [2]int       //rows, columns
	PointsStd    [2][]float64 //x and y of each point, standard basis
	PointsFrac   [2][]float64 //x and y of each point, fractional coordinates
	PointsNumDen [2][]float64 //x and y of each point, numerator/denominator form
}

// SeriesInfo is the information a group of simulations in a session share.
type SeriesInfo struct {
	Grids []*GammaGrid
}

// CommonSeriesInfo holds, for each session of the batch, its series infos.
type CommonSeriesInfo [][]*SeriesInfo

// Grid returns the grid-th grid of the csi-th series info of the given session, or
// nil if there is no such grid.
func (c CommonSeriesInfo) Grid(session, csi, grid int) *GammaGrid {
	if session < 0 || session >= len(c) {
		return nil
	}
	if csi < 0 || csi >= len(c[session]) || c[session][csi] == nil {
		return nil
	}
	g := c[session][csi].Grids
	if grid < 0 || grid >= len(g) {
		return nil
	}
	return g[grid]
}

// Len returns the number of points in the grid.
func (g *GammaGrid) Len() int {
	return len(g.RowIdx)
}
