/*
 * gamma_test.go, part of atsim.
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
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/rmera/atsim"
	"github.com/rmera/atsim/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// scan returns a 1x2 gamma surface scan, each point computed at boundary
// vacuums 0 to 3, plus a bulk reference with zero energy. With the bulk energy at zero and a
// boundary area of 0.5, the GB energies equal the bicrystal energies:
// 2(v-1)^2+3 at the first point and (v-2)^2+1 at the second.
func scan() ([]*atsim.Simulation, *Store, CommonSeriesInfo) {
	sims := []*atsim.Simulation{lammps("bulk", atsim.Bulk, 10, 0)}
	shifts := []interface{}{SeriesRecord{SeriesCSIIdx: 0, SeriesGridIdx: 0, SeriesPointIdx: 0}}
	for v := 0.0; v < 4; v++ {
		e := [2]float64{2*(v-1)*(v-1) + 3, (v-2)*(v-2) + 1}
		for p := 0; p < 2; p++ {
			sims = append(sims, bicrystal("gb", 10, 0.5, v, e[p]))
			shifts = append(shifts, SeriesRecord{SeriesCSIIdx: 0, SeriesGridIdx: 0, SeriesPointIdx: p})
		}
	}
	s := newStore(len(sims))
	s.SeriesNames = []string{RelativeShift}
	for _, r := range shifts {
		s.SeriesValues = append(s.SeriesValues, []interface{}{r})
	}
	g := &GammaGrid{
		RowIdx:       []int{0, 0},
		ColIdx:       []int{0, 1},
		Shape:        [2]int{1, 2},
		PointsStd:    [2][]float64{{0, 1.5}, {0, 0}},
		PointsFrac:   [2][]float64{{0, 0.5}, {0, 0}},
		PointsNumDen: [2][]float64{{0, 1}, {1, 1}},
	}
	return sims, s, CommonSeriesInfo{{&SeriesInfo{Grids: []*GammaGrid{g}}}}
}

func TestGammaSurfaceInfo(t *testing.T) {
	sims, s, csi := scan()
	reqs := make([]Request, 0, len(InfoNames))
	for _, info := range InfoNames {
		reqs = append(reqs, Request{Name: "gamma_surface_info", ID: info, Params: Params{InfoName: info}})
	}
	require.NoError(t, engine(t).Run(context.Background(), s, sims, csi, reqs...))
	assert.Equal(t, 0, s.FindByID(InfoColIdx).Vals[1])
	assert.Equal(t, 1, s.FindByID(InfoColIdx).Vals[8])
	assert.Equal(t, 1.5, s.FindByID(InfoXStdVals).Vals[2])
	assert.Equal(t, 0.5, s.FindByID(InfoXFracVals).Vals[4])
	assert.Equal(t, 1.0, s.FindByID(InfoYNumDenVals).Vals[3])
	assert.Equal(t, [2]int{1, 2}, s.FindByID(InfoGridShape).Vals[0])
	assert.Len(t, s.FindByID(SeriesPointIdx).Vals, len(sims))
}

func TestGammaSurfaceInfoMissing(t *testing.T) {
	sims, s, csi := scan()
	s.SeriesValues[1] = []interface{}{SeriesRecord{SeriesCSIIdx: 3, SeriesGridIdx: 0, SeriesPointIdx: 0}}
	s.SeriesValues[2] = []interface{}{SeriesRecord{SeriesCSIIdx: 0, SeriesGridIdx: 0, SeriesPointIdx: 9}}
	s.SeriesValues[3] = []interface{}{"not a record"}
	require.NoError(t, engine(t).Run(context.Background(), s, sims, csi, Request{Name: "gamma_surface_info", Params: Params{InfoName: InfoRowIdx}}))
	v := s.FindByID("gamma_surface_info").Vals
	assert.Nil(t, v[1])
	assert.Nil(t, v[2])
	assert.Nil(t, v[3])
	assert.Equal(t, 0, v[4])

	//no common series info at all
	_, s, _ = scan()
	require.NoError(t, engine(t).Run(context.Background(), s, sims, nil, Request{Name: "gamma_surface_info", Params: Params{InfoName: InfoGridShape}}))
	for _, v := range s.FindByID("gamma_surface_info").Vals {
		assert.Nil(t, v)
	}

	_, s, _ = scan()
	err := engine(t).Run(context.Background(), s, sims, csi, Request{Name: "gamma_surface_info", Params: Params{InfoName: "z_std_vals"}})
	assert.ErrorIs(t, err, atsim.ErrInvalidArgument)
}

func TestMasterGamma(t *testing.T) {
	sims, s, csi := scan()
	err := engine(t, WithWorkers(3)).Run(context.Background(), s, sims, csi,
		Request{Name: "master_gamma", Params: Params{EnergySrc: FinalEnergy, Unit: atsim.UnitEVPerAng2}})
	require.NoError(t, err)
	d := s.FindByID("master_gamma")
	require.NotNil(t, d)
	L, ok := d.Result.(*Landscape)
	require.True(t, ok)

	assert.Equal(t, []float64{0, 1, 2, 3}, L.Vacs)
	assert.Len(t, L.E, 4)
	assert.InDelta(t, 5.0, L.E[0].At(0, 0), 1e-12)
	assert.InDelta(t, 1.0, L.E[2].At(0, 1), 1e-12)
	assert.Equal(t, 1.5, L.X.At(0, 1))
	assert.Equal(t, 0.5, L.XYFrac[0].At(0, 1))

	assert.InDelta(t, 3.0, L.EMin.At(0, 0), 1e-9)
	assert.InDelta(t, 1.0, L.VacMin.At(0, 0), 1e-9)
	assert.InDelta(t, 1.0, L.EMin.At(0, 1), 1e-9)
	assert.InDelta(t, 2.0, L.VacMin.At(0, 1), 1e-9)

	//the fits go to the first simulation at each grid point
	f, ok := d.Vals[1].(GammaFit)
	require.True(t, ok)
	want := [3]float64{2, -4, 5}
	for i := range want {
		assert.InDelta(t, want[i], f.Coeffs[i], 1e-9)
	}
	assert.InDelta(t, 3.0, L.EMinFlat[1], 1e-9)
	assert.InDelta(t, 2.0, L.VacMinFlat[2], 1e-9)
	for _, i := range []int{0, 3, 8} {
		assert.True(t, math.IsNaN(L.EMinFlat[i]), i)
		assert.True(t, math.IsNaN(d.Vals[i].(GammaFit).VacMin), i)
	}
}

func TestMasterGammaTooFewPoints(t *testing.T) {
	sims, s, csi := scan()
	sims, s.SessionIDIdx, s.SeriesValues = sims[:5], s.SessionIDIdx[:5], s.SeriesValues[:5]
	require.NoError(t, engine(t).Run(context.Background(), s, sims, csi, Request{Name: "master_gamma", Params: Params{EnergySrc: FinalEnergy}}))
	L := s.FindByID("master_gamma").Result.(*Landscape)
	assert.Len(t, L.Vacs, 2)
	assert.False(t, L.EMin.IsSet(0, 0))
	assert.False(t, L.VacMin.IsSet(0, 1))
}

func TestMasterGammaNoEnergies(t *testing.T) {
	sims := []*atsim.Simulation{lammps("bulk", atsim.Bulk, 10, 0)}
	s := newStore(1)
	require.NoError(t, engine(t).Run(context.Background(), s, sims, nil, Request{Name: "master_gamma", Params: Params{EnergySrc: FinalEnergy}}))
	d := s.FindByID("master_gamma")
	L := d.Result.(*Landscape)
	assert.Empty(t, L.E)
	assert.Nil(t, L.X)
	assert.True(t, math.IsNaN(d.Vals[0].(GammaFit).EMin))
}

func TestFitQuadratic(t *testing.T) {
	co, err := fitQuadratic([]float64{-1, 0, 1, 2}, []float64{6, 3, 2, 3})
	require.NoError(t, err)
	for i, want := range []float64{1, -2, 3} {
		assert.InDelta(t, want, co[i], 1e-9)
	}
	x, y, ok := minimum(co)
	require.True(t, ok)
	assert.InDelta(t, 1.0, x, 1e-9)
	assert.InDelta(t, 2.0, y, 1e-9)
	_, _, ok = minimum([3]float64{0, 1, 1})
	assert.False(t, ok)
}

func TestGammaSurfaceInfoSessions(t *testing.T) {
	sims, s, csi := scan()
	//the last four simulations belong to a second session, whose grid lists
	//the points the other way around. The last one is in a session without info.
	s.SessionIDs = []string{"first", "second", "third"}
	for i := 5; i < len(sims); i++ {
		s.SessionIDIdx[i] = 1
	}
	s.SessionIDIdx[8] = 2
	swapped := &GammaGrid{
		RowIdx:       []int{0, 0},
		ColIdx:       []int{1, 0},
		Shape:        [2]int{1, 2},
		PointsStd:    [2][]float64{{1.5, 0}, {0, 0}},
		PointsFrac:   [2][]float64{{0.5, 0}, {0, 0}},
		PointsNumDen: [2][]float64{{1, 0}, {1, 1}},
	}
	csi = append(csi, []*SeriesInfo{{Grids: []*GammaGrid{swapped}}})
	require.NoError(t, engine(t).Run(context.Background(), s, sims, csi,
		Request{Name: "gamma_surface_info", ID: "col", Params: Params{InfoName: InfoColIdx}},
		Request{Name: "gamma_surface_info", ID: "x", Params: Params{InfoName: InfoXStdVals}}))
	col := s.FindByID("col").Vals
	x := s.FindByID("x").Vals
	assert.Equal(t, 0, col[1])
	assert.Equal(t, 1, col[5])
	assert.Equal(t, 0, col[6])
	assert.Equal(t, 1.5, x[2])
	assert.Equal(t, 0.0, x[6])
	assert.Nil(t, col[8])
	assert.Nil(t, x[8])
}

func TestMasterGammaNonFiniteVacuum(t *testing.T) {
	sims, s, csi := scan()
	sims[1].Structure.BoundaryVac = math.NaN()
	sims[2].Structure.BoundaryVac = math.Inf(1)
	require.NoError(t, engine(t).Run(context.Background(), s, sims, csi, Request{Name: "master_gamma", Params: Params{EnergySrc: FinalEnergy}}))
	d := s.FindByID("master_gamma")
	L := d.Result.(*Landscape)
	assert.Equal(t, []float64{1, 2, 3}, L.Vacs)
	//three vacuums are left at each point, enough for the fit
	assert.InDelta(t, 3.0, L.EMin.At(0, 0), 1e-9)
	assert.InDelta(t, 2.0, L.VacMin.At(0, 1), 1e-9)
	assert.True(t, math.IsNaN(d.Vals[1].(GammaFit).EMin))
	assert.InDelta(t, 3.0, d.Vals[3].(GammaFit).EMin, 1e-9)
	assert.InDelta(t, 1.0, d.Vals[4].(GammaFit).EMin, 1e-9)
}

func TestMasterGammaNonFiniteEnergy(t *testing.T) {
	sims, s, csi := scan()
	sims[3].Results.Energies[FinalEnergy] = []float64{math.Inf(1)} //first point, vacuum 1
	require.NoError(t, engine(t).Run(context.Background(), s, sims, csi, Request{Name: "master_gamma", Params: Params{EnergySrc: FinalEnergy}}))
	L := s.FindByID("master_gamma").Result.(*Landscape)
	assert.True(t, math.IsInf(L.E[1].At(0, 0), 1))
	//the fit goes through the three finite points only
	assert.InDelta(t, 3.0, L.EMin.At(0, 0), 1e-9)
	assert.InDelta(t, 1.0, L.VacMin.At(0, 0), 1e-9)

	sims, s, csi = scan()
	sims[3].Results.Energies[FinalEnergy] = []float64{math.Inf(1)}
	sims[5].Results.Energies[FinalEnergy] = []float64{math.Inf(-1)}
	require.NoError(t, engine(t).Run(context.Background(), s, sims, csi, Request{Name: "master_gamma", Params: Params{EnergySrc: FinalEnergy}}))
	L = s.FindByID("master_gamma").Result.(*Landscape)
	assert.False(t, L.EMin.IsSet(0, 0))
	assert.True(t, L.EMin.IsSet(0, 1))
}

func TestLandscapeJSON(t *testing.T) {
	sims, s, csi := scan()
	sims[3].Results.Energies[FinalEnergy] = []float64{math.Inf(1)}
	require.NoError(t, engine(t).Run(context.Background(), s, sims, csi, Request{Name: "master_gamma", Params: Params{EnergySrc: FinalEnergy}}))
	L := s.FindByID("master_gamma").Result.(*Landscape)
	b, err := json.Marshal(L)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"E":{"0":`)

	L2 := new(Landscape)
	require.NoError(t, json.Unmarshal(b, L2))
	assert.Equal(t, L.Vacs, L2.Vacs)
	require.Len(t, L2.E, len(L.E))
	for _, v := range []float64{0, 2, 3} {
		assert.True(t, L.E[v].Equal(L2.E[v]), v)
	}
	//infinite energies come back as unset
	assert.False(t, L2.E[1].IsSet(0, 0))
	assert.True(t, L.X.Equal(L2.X))
	assert.True(t, L.XYFrac[0].Equal(L2.XYFrac[0]))
	assert.True(t, L.EMin.Equal(L2.EMin))
	assert.True(t, L.VacMin.Equal(L2.VacMin))
	assert.True(t, floats.Same(L.EMinFlat, L2.EMinFlat))
	assert.True(t, floats.Same(L.VacMinFlat, L2.VacMinFlat))
	require.Len(t, L2.Fits, len(L.Fits))
	for i := range L.Fits {
		assert.True(t, floats.Same(L.Fits[i][:], L2.Fits[i][:]), i)
	}

	//an empty landscape
	b, err = json.Marshal(&Landscape{E: map[float64]*grid.Matrix{}})
	require.NoError(t, err)
	L2 = new(Landscape)
	require.NoError(t, json.Unmarshal(b, L2))
	assert.Nil(t, L2.X)
	assert.Empty(t, L2.E)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"E":{"wide":[[1]]}}`), L2), atsim.ErrInvalidArgument)
}
