// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered identifiers for Dishly rows.

Every primary key (dish, step, ingredient, collection, comment) is a Version 7
UUID generated in the application, so the in-memory store and PostgreSQL see
identical ids and rows sort by creation time.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Entropy failure is an unrecoverable system-level error
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Short returns the first n hex characters of a random UUIDv4, used as a
// collision-resistant suffix for human-readable handles.
func Short(n int) string {
	raw := uuid.NewString()
	hex := make([]byte, 0, 32)
	for i := 0; i < len(raw); i++ {
		if raw[i] != '-' {
			hex = append(hex, raw[i])
		}
	}
	if n > len(hex) {
		n = len(hex)
	}
	return string(hex[:n])
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
