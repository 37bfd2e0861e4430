/*
 * conversion.go, part of atsim.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package atsim

//This provides useful conversion factors and other constants

//Conversions
const (
	EVPerAng2ToJPerM2 = 16.02176565 //eV/A^2 to J/m^2
	JPerM2ToEVPerAng2 = 1 / 16.02176565
)

//Units
const (
	UnitEVPerAng2 = "eV/Ang^2"
	UnitJPerM2    = "J/m^2"
)
