/*
 * interfaces.go, part of atsim.
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

import "fmt"

//Errors

//The Decorate system predates the wrapping errors of Go (the "%w" directive and the errors package).
//CError supports both: it can be decorated, and it unwraps to its kind, so callers can use errors.Is.

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the "decoration" slice resulting from the call. An empty string only returns the current value.
	//The decoration slice contains a list of functions in the calling stack, plus, for each function any relevant information, or nothing.
	//If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
}

// ErrKind is the category of an error. The kinds are the
// values one should compare to with errors.Is.
type ErrKind string

func (k ErrKind) Error() string { return string(k) }

const (
	ErrUnknownCompute      = ErrKind("atsim: unknown compute")
	ErrInvalidEnergySource = ErrKind("atsim: invalid energy source")
	ErrInvalidArgument     = ErrKind("atsim: invalid argument")
)

// CError is the concrete error type of atsim.
type CError struct {
	msg  string
	kind ErrKind
	deco []string
}

// Errorf returns a new *CError of the given kind, decorated with the caller,
// and a message built from format and args.
func Errorf(kind ErrKind, caller string, format string, args ...interface{}) *CError {
	err := &CError{msg: fmt.Sprintf(format, args...), kind: kind}
	err.Decorate(caller)
	return err
}

// Error returns a string with an error message.
func (err *CError) Error() string {
	if err.kind == "" {
		return err.msg
	}
	return fmt.Sprintf("%s: %s", err.kind, err.msg)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Kind returns the category of the error.
func (err *CError) Kind() ErrKind { return err.kind }

func (err *CError) Unwrap() error {
	if err.kind == "" {
		return nil
	}
	return err.kind
}

// ErrDecorate decorates err with the caller's name, if err implements Error,
// and returns it. Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
