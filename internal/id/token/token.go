// Package token provides submission ID generation helpers.
package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator creates submission ids of the form
// "<unix-millis>-<random suffix>". The timestamp prefix keeps ids
// roughly creation-ordered for humans, but callers must not rely on
// lexical order; the random suffix makes collisions negligible at
// normal submission rates.
type Generator struct{}

// New creates a new Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns an id derived from the given time plus a random suffix.
func (Generator) NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}
