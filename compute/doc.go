/*
 * doc.go, part of atsim.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package compute derives physical quantities from batches of atomistic simulations.

A quantity is a "compute": a name from a closed set (see Kind), a set of
parameters, and a list of other computes it depends on. Resolve expands a
requested compute into the ordered list of Definitions it needs, prerequisites
first, with no duplicates. An Engine adds those definitions to a Store and
evaluates each one exactly once per batch, in order.

Single-simulation computes (energies, atom counts, boundary descriptors)
produce one value per simulation, independently of the others. Multi-simulation
computes need the whole batch: gb_energy pairs bicrystal and bulk supercells,
gamma_surface_info places each simulation in its gamma-surface grid, and
master_gamma fits the energy versus boundary vacuum of each grid cell.

The Store is built by the caller (the harvest layer) with the series and session
data of the batch, and is filled by the Engine. Values of a definition, one per
simulation, are in its Vals field; nil means "not available" for that simulation.
*/
package compute
