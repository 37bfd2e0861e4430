/*
 * handy.go, part of atsim.
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
	"reflect"
)

//Some internal convenience functions.

// asInt returns v as an int, and true, if v holds a value of any integer type.
func asInt(v interface{}) (int, bool) {
	switch i := v.(type) {
	case int:
		return i, true
	case int8:
		return int(i), true
	case int16:
		return int(i), true
	case int32:
		return int(i), true
	case int64:
		return int(i), true
	case uint:
		return int(i), true
	case uint8:
		return int(i), true
	case uint16:
		return int(i), true
	case uint32:
		return int(i), true
	case uint64:
		return int(i), true
	}
	return 0, false
}

// asFloat returns v as a float64, and true, if v holds a number.
func asFloat(v interface{}) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

// sameValue compares two values of a series. Numbers are compared by value
// regardless of their types, everything else with reflect.DeepEqual.
func sameValue(a, b interface{}) bool {
	fa, oka := asFloat(a)
	fb, okb := asFloat(b)
	if oka && okb {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func sameTuple(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameValue(a[i], b[i]) {
			return false
		}
	}
	return true
}

//returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

// vals returns the values of the first definition in defs with the given name, or nil.
func vals(defs []*Definition, name string) []interface{} {
	for _, d := range defs {
		if d.Name == name {
			return d.Vals
		}
	}
	return nil
}

// infoVals returns the values of the gamma_surface_info definition in defs that
// extracts the quantity info, or nil.
func infoVals(defs []*Definition, info string) []interface{} {
	for _, d := range defs {
		if d.Kind == GammaSurfaceInfo && d.Params.InfoName == info {
			return d.Vals
		}
	}
	return nil
}

// at returns s[i], or nil if i is out of range.
func at(s []interface{}, i int) interface{} {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}
