/*
 * doc.go, part of atsim.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package atsim is the root package of the atsim library. It provides the simulation
records consumed by the analysis packages, and the error types shared by all of them.

	**atsim Capabilities**

    Grain boundary energies from pairs of bicrystal and bulk supercells
    matched along declared simulation series.

    Gamma-surface landscapes: gathers the grid position of each
    simulation in a relative-shift scan, and fits the energy versus
    boundary vacuum for each grid cell with a quadratic to obtain the
    relaxed energy and expansion.

    Per-simulation quantities: atom counts, energies from a given
    optimisation step, energy per atom, boundary area, vacuum and thickness,
    and displacement of atoms along the boundary normal.

    A dependency resolver, so that requesting one quantity brings in, in order,
    all the quantities it needs, each one computed once per batch.

    Corners, edge paths and integer bounding boxes of supercell
    parallelepipeds in arbitrary bases (package geometry).

The computations live in the compute package. Simulations are loaded and
output is written elsewhere; atsim only sees already parsed records.
*/
package atsim
