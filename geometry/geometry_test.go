/*
 * geometry_test.go, part of atsim.
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

package geometry

import (
	"testing"

	"github.com/rmera/atsim"
	v3 "github.com/rmera/atsim/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func vecs(Te *testing.T, data ...float64) *v3.Matrix {
	m, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	return m
}

func TestCornersUnitCube(Te *testing.T) {
	box := vecs(Te, 1, 0, 0, 0, 1, 0, 0, 0, 1)
	c, err := Corners([]*v3.Matrix{box}, nil)
	require.NoError(Te, err)
	require.Len(Te, c, 1)
	assert.Equal(Te, 8, c[0].NVecs())
	assert.Equal(Te, []float64{0, 0, 0}, c[0].Vec(0))
	assert.Equal(Te, []float64{1, 1, 1}, c[0].Vec(7))
	assert.Equal(Te, []float64{1, 1, 0}, c[0].Vec(4))
	assert.Equal(Te, []float64{0, 1, 1}, c[0].Vec(6))
}

func TestCornersWithOrigin(Te *testing.T) {
	//edge vectors as rows
	box := vecs(Te, 0, 2, 1, 3, -1, 2, 1, -1, 0)
	origin := vecs(Te, 10, 20, 30)
	c, err := Corners([]*v3.Matrix{box}, []*v3.Matrix{origin})
	require.NoError(Te, err)
	want := vecs(Te,
		10, 20, 30,
		10, 22, 31,
		13, 19, 32,
		11, 19, 30,
		13, 21, 33,
		11, 21, 31,
		14, 18, 32,
		14, 20, 33)
	assert.True(Te, mat.Equal(want, c[0]), c[0].String())
}

func TestCornersBadInput(Te *testing.T) {
	box := vecs(Te, 1, 0, 0, 0, 1, 0)
	_, err := Corners([]*v3.Matrix{box}, nil)
	assert.ErrorIs(Te, err, atsim.ErrInvalidArgument)
	good := vecs(Te, 1, 0, 0, 0, 1, 0, 0, 0, 1)
	_, err = Corners([]*v3.Matrix{good, good}, []*v3.Matrix{vecs(Te, 0, 0, 0)})
	assert.ErrorIs(Te, err, atsim.ErrInvalidArgument)
}

func TestEdgePathAndFaces(Te *testing.T) {
	box := vecs(Te, 2, 0, 0, 0, 3, 0, 0, 0, 4)
	faces, err := Faces([]*v3.Matrix{box}, nil)
	require.NoError(Te, err)
	require.Len(Te, faces, 6)
	f := faces["face01b"][0]
	assert.Equal(Te, 5, f.NVecs())
	//the b face of the 0-1 plane lies at z=4, and the loop is closed.
	for i := 0; i < 5; i++ {
		assert.Equal(Te, 4.0, f.At(i, 2))
	}
	assert.Equal(Te, f.Vec(0), f.Vec(4))

	paths, err := EdgePath([]*v3.Matrix{box}, nil)
	require.NoError(Te, err)
	require.Len(Te, paths, 1)
	assert.Equal(Te, 30, paths[0].NVecs())
	for i, name := range FaceNames {
		assert.Equal(Te, faces[name][0].Vec(2), paths[0].Vec(5*i+2), name)
	}
}

func TestBoundingBoxOrthogonal(Te *testing.T) {
	box := vecs(Te, 2, 0, 0, 0, 2, 0, 0, 0, 2)
	b, err := BoundingBoxes([]*v3.Matrix{box}, nil)
	require.NoError(Te, err)
	require.Len(Te, b, 1)
	assert.True(Te, mat.Equal(box, b[0].Box), b[0].Box.String())
	assert.Equal(Te, []float64{0, 0, 0}, b[0].Origin.Vec(0))
	assert.Equal(Te, [3]int{2, 2, 2}, b[0].BoxInBasis)
	assert.Equal(Te, [3]int{0, 0, 0}, b[0].OriginInBasis)
}

func TestBoundingBoxSkewed(Te *testing.T) {
	//A sheared cell: its corners span x in [-1, 2.5], y in [0, 2], z in [0, 1]
	box := vecs(Te, 2.5, 0, 0, -1, 2, 0, 0, 0, 1)
	basis := vecs(Te, 0.5, 0, 0, 0, 1, 0, 0, 0, 1)
	b, err := BoundingBoxes([]*v3.Matrix{box}, basis)
	require.NoError(Te, err)
	assert.Equal(Te, [3]int{7, 2, 1}, b[0].BoxInBasis)
	assert.Equal(Te, [3]int{-2, 0, 0}, b[0].OriginInBasis)
	assert.Equal(Te, []float64{-1, 0, 0}, b[0].Origin.Vec(0))
	assert.Equal(Te, []float64{3.5, 0, 0}, b[0].Box.Vec(0))
	assert.Equal(Te, []float64{0, 2, 0}, b[0].Box.Vec(1))
}

func TestBoundingBoxSnapsNoise(Te *testing.T) {
	//tiny negative noise must not push the box an extra basis vector down
	box := vecs(Te, 1, -1e-14, 0, 0, 1, 0, 0, 0, 1)
	b, err := BoundingBoxes([]*v3.Matrix{box}, nil)
	require.NoError(Te, err)
	assert.Equal(Te, [3]int{0, 0, 0}, b[0].OriginInBasis)
	assert.Equal(Te, [3]int{1, 1, 1}, b[0].BoxInBasis)
}

func TestBoundingBoxSingularBasis(Te *testing.T) {
	box := vecs(Te, 1, 0, 0, 0, 1, 0, 0, 0, 1)
	basis := vecs(Te, 1, 0, 0, 2, 0, 0, 0, 0, 1)
	_, err := BoundingBoxes([]*v3.Matrix{box}, basis)
	assert.ErrorIs(Te, err, atsim.ErrInvalidArgument)
}
