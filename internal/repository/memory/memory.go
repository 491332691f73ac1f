// internal/repository/memory/memory.go

// Package memory provides in-memory repository implementations for the
// test suite. They pair with the memory session factory: the session
// argument is accepted for interface compatibility and ignored.
//
// These fakes do not emulate transactions; a rolled-back scope's writes
// stay visible. Tests that exercise rollback semantics assert on the
// event buffer, not on the store.
package memory

import "github.com/google/uuid"

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
