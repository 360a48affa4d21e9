// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package compileerr enumerates the fatal error kinds a compile can fail
// with as sentinel errors, so the driver can classify a failure with
// errors.Is even after it has been wrapped with a message (a name, never
// a source position) at the point where it was raised.
package compileerr

import "github.com/pkg/errors"

var (
	// ErrUnsupportedMode is raised by the driver for an unknown mode flag.
	ErrUnsupportedMode = errors.New("unsupported mode")
	// ErrIOError wraps a failure reading input or writing output.
	ErrIOError = errors.New("io error")
	// ErrParseError is raised by the parser on a syntax error.
	ErrParseError = errors.New("parse error")
	// ErrNonConstantInitialiser is raised when a ConstDef's initialiser is
	// not a compile-time constant.
	ErrNonConstantInitialiser = errors.New("non-constant initialiser")
	// ErrConstDivByZero is raised on a const-eval division/modulo by zero.
	ErrConstDivByZero = errors.New("constant division by zero")
	// ErrUnresolvedName is raised when an LVal does not resolve to any
	// symbol.
	ErrUnresolvedName = errors.New("unresolved name")
	// ErrAssignToConst is raised when an Assign target names a constant.
	ErrAssignToConst = errors.New("assignment to constant")
	// ErrSymbolKindMismatch is raised when a lookup finds the name bound
	// to the other kind (const looked up as var, or vice versa).
	ErrSymbolKindMismatch = errors.New("symbol kind mismatch")
	// ErrMalformedIR is raised by the Koopa-text loader on malformed input.
	ErrMalformedIR = errors.New("malformed IR")
	// ErrDuplicateDefinition is raised when a name is redefined in the
	// function's single flat scope.
	ErrDuplicateDefinition = errors.New("duplicate definition")
)

// Newf wraps sentinel with a formatted message, preserving errors.Is
// matchability against sentinel.
func Newf(sentinel error, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, format, args...)
}
