// Package repository implements the persistence layer on database/sql.
// Sentinel errors defined here let handlers map failures onto the HTTP
// contract without inspecting driver-specific error strings at the call
// site.
package repository

import "errors"

// ErrNotFound is returned when a referenced id does not exist. Handlers
// translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when registration or a username update
// collides with the unique username index. Handlers translate this into
// HTTP 400.
var ErrUsernameExists = errors.New("username already exists")
