/*
 * geometry.go, part of atsim.
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

// Package geometry computes corners, edge paths and bounding boxes of
// parallelepipeds, such as simulation supercells.
//
// As everywhere in atsim, vectors are rows: a parallelepiped is a
// 3-vector *v3.Matrix holding its edge vectors, and an origin is a
// 1-vector *v3.Matrix. Functions work on batches of parallelepipeds.
// A nil origins slice means all origins are zero.
package geometry

import (
	"math"

	"github.com/rmera/atsim"
	v3 "github.com/rmera/atsim/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Values closer than this to zero are set to zero before taking floors and ceilings.
const snapTol = 1e-12

// cornerCoefs holds, for each of the 8 corners, how many of each edge
// vector are summed to reach it.
var cornerCoefs = mat.NewDense(8, 3, []float64{
	0, 0, 0,
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
	1, 1, 0,
	1, 0, 1,
	0, 1, 1,
	1, 1, 1,
})

// FaceNames are the keys of the map returned by Faces. The digits are the
// indexes of the edge vectors in the plane of the face. "a" faces contain
// the origin, "b" faces are parallel to them.
var FaceNames = [6]string{"face01a", "face01b", "face02a", "face02b", "face12a", "face12b"}

// corners of each face, as a closed loop.
var faceCorners = [6][5]int{
	{0, 1, 4, 2, 0},
	{3, 5, 7, 6, 3},
	{0, 1, 5, 3, 0},
	{2, 4, 7, 6, 2},
	{0, 2, 6, 3, 0},
	{1, 4, 7, 5, 1},
}

func checkBoxes(caller string, boxes, origins []*v3.Matrix) error {
	if origins != nil && len(origins) != len(boxes) {
		return atsim.Errorf(atsim.ErrInvalidArgument, caller, "%d origins given for %d boxes, there must be an origin for each box", len(origins), len(boxes))
	}
	for i, b := range boxes {
		if b == nil || b.NVecs() != 3 {
			return atsim.Errorf(atsim.ErrInvalidArgument, caller, "box %d must be defined by 3 edge vectors", i)
		}
		if origins != nil && (origins[i] == nil || origins[i].NVecs() != 1) {
			return atsim.Errorf(atsim.ErrInvalidArgument, caller, "origin %d must be a single vector", i)
		}
	}
	return nil
}

// Corners returns the 8 corners of each parallelepiped. The corners are, in order,
// the origin, each edge vector, the sums of edges 0+1, 0+2 and 1+2, and the sum of
// the three edges, all translated by the origin of the box.
func Corners(boxes, origins []*v3.Matrix) ([]*v3.Matrix, error) {
	if err := checkBoxes("Corners", boxes, origins); err != nil {
		return nil, err
	}
	ret := make([]*v3.Matrix, len(boxes))
	for i, b := range boxes {
		c := v3.Zeros(8)
		c.Mul(cornerCoefs, b)
		if origins != nil {
			c.AddVec(c, origins[i])
		}
		ret[i] = c
	}
	return ret, nil
}

// Faces returns, for each face name in FaceNames, a closed 5-point path
// around that face of each parallelepiped.
func Faces(boxes, origins []*v3.Matrix) (map[string][]*v3.Matrix, error) {
	corners, err := Corners(boxes, origins)
	if err != nil {
		return nil, atsim.ErrDecorate(err, "Faces")
	}
	ret := make(map[string][]*v3.Matrix, len(FaceNames))
	for f, name := range FaceNames {
		paths := make([]*v3.Matrix, len(corners))
		for i, c := range corners {
			p := v3.Zeros(5)
			p.SomeVecs(c, faceCorners[f][:])
			paths[i] = p
		}
		ret[name] = paths
	}
	return ret, nil
}

// EdgePath returns, for each parallelepiped, a 30-point path that traces all its
// edges: the six face loops of Faces, concatenated in FaceNames order.
// Useful for plotting.
func EdgePath(boxes, origins []*v3.Matrix) ([]*v3.Matrix, error) {
	faces, err := Faces(boxes, origins)
	if err != nil {
		return nil, atsim.ErrDecorate(err, "EdgePath")
	}
	ret := make([]*v3.Matrix, len(boxes))
	for i := range boxes {
		p := v3.Zeros(5 * len(FaceNames))
		for f, name := range FaceNames {
			p.View(5*f, 5).Copy(faces[name][i].Dense)
		}
		ret[i] = p
	}
	return ret, nil
}

// Bounds is a box aligned with a basis, that contains a parallelepiped.
type Bounds struct {
	Box           *v3.Matrix //edge vectors, each an integer multiple of a basis vector
	Origin        *v3.Matrix
	BoxInBasis    [3]int //number of basis vectors along each edge
	OriginInBasis [3]int //origin, in basis vectors
}

// BoundingBoxes returns, for each parallelepiped, the smallest box whose edges are integer
// multiples of the basis vectors and whose origin is an integer combination of them,
// that contains the parallelepiped. If basis is nil, the identity is used.
// The parallelepipeds are taken to start at the origin.
func BoundingBoxes(boxes []*v3.Matrix, basis *v3.Matrix) ([]Bounds, error) {
	if basis == nil {
		basis, _ = v3.NewMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	}
	inv, err := v3.Inverse(basis)
	if err != nil {
		return nil, atsim.Errorf(atsim.ErrInvalidArgument, "BoundingBoxes", "basis vectors can't be inverted: %s", err.Error())
	}
	corners, err := Corners(boxes, nil)
	if err != nil {
		return nil, atsim.ErrDecorate(err, "BoundingBoxes")
	}
	ret := make([]Bounds, len(corners))
	col := make([]float64, 8)
	for i, c := range corners {
		inBasis := v3.Zeros(8)
		inBasis.Mul(c, inv) //x = f*B, so f = x*B^-1
		var minFloor [3]float64
		for j := 0; j < 3; j++ {
			mat.Col(col, j, inBasis.Dense)
			mn := snap(floats.Min(col))
			mx := snap(floats.Max(col))
			minFloor[j] = math.Floor(mn)
			ret[i].OriginInBasis[j] = int(minFloor[j])
			ret[i].BoxInBasis[j] = int(math.Ceil(mx) - minFloor[j])
		}
		origin := v3.Zeros(1)
		origin.Mul(mat.NewDense(1, 3, minFloor[:]), basis)
		box := v3.Zeros(3)
		for j := 0; j < 3; j++ {
			v := basis.Vec(j)
			floats.Scale(float64(ret[i].BoxInBasis[j]), v)
			box.SetVec(j, v)
		}
		box.Snap(0, snapTol)
		ret[i].Origin = origin
		ret[i].Box = box
	}
	return ret, nil
}

func snap(v float64) float64 {
	if math.Abs(v) <= snapTol {
		return 0
	}
	return v
}
