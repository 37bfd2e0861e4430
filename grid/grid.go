/*
 * grid.go, part of atsim.
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

// Package grid provides a small row-major matrix of float64 values indexed
// by (row, column), used to hold gamma-surface landscapes. Unset cells are NaN.
package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Matrix is a rows x cols grid of values.
type Matrix struct {
	rows, cols int
	d          []float64 //row-major
}

// NewMatrix returns a new r x c matrix with every cell set to fill.
func NewMatrix(r, c int, fill float64) *Matrix {
	if r < 0 || c < 0 {
		panic("atsim/grid.NewMatrix: negative dimensions")
	}
	M := &Matrix{rows: r, cols: c, d: make([]float64, r*c)}
	M.Fill(fill)
	return M
}

// NaNs returns a new r x c matrix where all cells are unset.
func NaNs(r, c int) *Matrix {
	return NewMatrix(r, c, math.NaN())
}

func (M *Matrix) Dims() (int, int) {
	return M.rows, M.cols
}

// returns the index in the data slice of a matrix given
// the row and column indexes.
func (M *Matrix) rc2i(r, c int) int {
	M.Check(r, c, true)
	return M.cols*r + c
}

// Check checks if the given row and column indexes are within range.
// if pan is given and true, it panics if either is out of range,
// otherwise, it returns an error.
func (M *Matrix) Check(r, c int, pan ...bool) error {
	var err error
	if r < 0 || r >= M.rows {
		err = fmt.Errorf("atsim/grid: Row %d out of range", r)
	}
	if c < 0 || c >= M.cols {
		err = fmt.Errorf("atsim/grid: Column %d out of range", c)
	}
	if err != nil && len(pan) > 0 && pan[0] {
		panic(err.Error())
	}
	return err
}

func (M *Matrix) At(r, c int) float64 {
	return M.d[M.rc2i(r, c)]
}

func (M *Matrix) Set(r, c int, v float64) {
	M.d[M.rc2i(r, c)] = v
}

// IsSet returns true if the r,c cell holds a non-NaN value.
func (M *Matrix) IsSet(r, c int) bool {
	return !math.IsNaN(M.At(r, c))
}

// Fill sets all the cells to v
func (M *Matrix) Fill(v float64) {
	for i := range M.d {
		M.d[i] = v
	}
}

// Flat returns a copy of the data, row-major.
func (M *Matrix) Flat() []float64 {
	ret := make([]float64, len(M.d))
	copy(ret, M.d)
	return ret
}

// Rows returns the matrix as a [][]float64
func (M *Matrix) Rows() [][]float64 {
	ret := make([][]float64, M.rows)
	for i := range ret {
		ret[i] = make([]float64, M.cols)
		copy(ret[i], M.d[i*M.cols:(i+1)*M.cols])
	}
	return ret
}

// Equal returns true if A and M have the same dimensions and values.
// NaN cells are considered equal to each other.
func (M *Matrix) Equal(A *Matrix) bool {
	if M.rows != A.rows || M.cols != A.cols {
		return false
	}
	return floats.Same(M.d, A.d)
}

// ToAll applies f to each cell of the matrix, row-major. Returns error upon failure, or nil.
func (M *Matrix) ToAll(f func(r, c int, v float64) error) error {
	for i := 0; i < M.rows; i++ {
		for j := 0; j < M.cols; j++ {
			if err := f(i, j, M.d[M.cols*i+j]); err != nil {
				return fmt.Errorf("atsim/grid.Matrix.ToAll: Error at %d, %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func (M *Matrix) String() string {
	ret := fmt.Sprintf("rows:%d cols:%d\n", M.rows, M.cols)
	t := make([]string, 0, M.rows)
	for _, row := range M.Rows() {
		s := make([]string, 0, len(row))
		for _, v := range row {
			s = append(s, fmt.Sprintf("%9.4f", v))
		}
		t = append(t, strings.Join(s, " "))
	}
	return ret + strings.Join(t, "\n")
}

// MarshalJSON encodes the matrix as nested rows. NaN and infinite cells are
// encoded as null, since JSON has no such numbers.
func (M *Matrix) MarshalJSON() ([]byte, error) {
	rows := make([][]*float64, M.rows)
	for i := range rows {
		rows[i] = make([]*float64, M.cols)
		for j := range rows[i] {
			v := M.d[M.cols*i+j]
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				rows[i][j] = &v
			}
		}
	}
	return json.Marshal(rows)
}

func (M *Matrix) UnmarshalJSON(b []byte) error {
	var rows [][]*float64
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	M.rows = len(rows)
	M.cols = 0
	if M.rows > 0 {
		M.cols = len(rows[0])
	}
	M.d = make([]float64, M.rows*M.cols)
	for i, row := range rows {
		if len(row) != M.cols {
			return fmt.Errorf("atsim/grid: ragged row %d", i)
		}
		for j, v := range row {
			M.d[M.cols*i+j] = math.NaN()
			if v != nil {
				M.d[M.cols*i+j] = *v
			}
		}
	}
	return nil
}
