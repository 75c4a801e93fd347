// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package result

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// NewRunID returns a fresh run identifier, a UUID encoded with base64 to
// keep it short.
func NewRunID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
