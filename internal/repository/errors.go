// Package repository defines data access for off-ledger account state:
// user accounts and their refresh tokens.  Sentinel errors let handlers
// distinguish failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when registration collides with an
// existing account email.  Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrAddressExists is returned when registration supplies a ledger
// address that is already bound to another account.  One address maps
// to exactly one account so ledger callers stay attributable.
var ErrAddressExists = errors.New("address already registered")
