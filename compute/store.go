/*
 * store.go, part of atsim.
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

// SeriesRecord is a series value made of several named values, like the
// relative shift of a gamma surface scan, which carries the indexes that
// locate a simulation in its common series info.
type SeriesRecord map[string]interface{}

// Store holds the variables of one batch of simulations. The series and session
// fields are set up by whoever builds the batch. Variables is filled by Engine.Run.
type Store struct {
	Variables []*Definition

	SeriesNames  []string        //declared series
	SeriesValues [][]interface{} //SeriesValues[sim][i] is the value of the series SeriesNames[i] for a simulation
	SessionIDs   []string
	SessionIDIdx []int //SessionIDIdx[sim] is the index in SessionIDs of the session of a simulation
}

// NumSims returns the number of simulations in the batch.
func (s *Store) NumSims() int {
	return len(s.SessionIDIdx)
}

// Add adds d to the variables, unless the same definition is already there.
// It returns the definition that ends up stored.
func (s *Store) Add(d *Definition) *Definition {
	for _, v := range s.Variables {
		if v.Equal(d) {
			return v
		}
	}
	s.Variables = append(s.Variables, d)
	return d
}

// Find returns the first variable that matches q, or nil.
func (s *Store) Find(q *Definition) *Definition {
	for _, v := range s.Variables {
		if v.Matches(q) {
			return v
		}
	}
	return nil
}

// FindByID returns the first variable with the given ID, or nil.
func (s *Store) FindByID(id string) *Definition {
	for _, v := range s.Variables {
		if v.ID == id {
			return v
		}
	}
	return nil
}

func (s *Store) seriesIndex(name string) int {
	for i, v := range s.SeriesNames {
		if v == name {
			return i
		}
	}
	return -1
}

// SeriesColumn returns the values of the named series for each simulation, and true,
// or nil and false if no such series was declared.
func (s *Store) SeriesColumn(name string) ([]interface{}, bool) {
	i := s.seriesIndex(name)
	if i < 0 {
		return nil, false
	}
	ret := make([]interface{}, s.NumSims())
	for sim := range ret {
		if sim < len(s.SeriesValues) && i < len(s.SeriesValues[sim]) {
			ret[sim] = s.SeriesValues[sim][i]
		}
	}
	return ret, true
}

// SeriesField returns the value named field of the record-valued series col,
// for the simulation sim. It returns nil if any of those is missing.
func (s *Store) SeriesField(col, field string, sim int) interface{} {
	i := s.seriesIndex(col)
	if i < 0 || sim < 0 || sim >= len(s.SeriesValues) || i >= len(s.SeriesValues[sim]) {
		return nil
	}
	switch r := s.SeriesValues[sim][i].(type) {
	case SeriesRecord:
		return r[field]
	case map[string]interface{}:
		return r[field]
	}
	return nil
}
