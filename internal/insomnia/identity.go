package insomnia

import (
	"crypto/md5"
	"encoding/hex"
)

// Fixed timestamp bases. The output format wants epoch-millisecond values,
// but regeneration must be byte-stable, so these constants stand in for the
// wall clock: workspaceEpochMillis stamps the workspace-level sections (the
// environment uses +1 and the cookie jar +2, matching the documents the
// format was reverse-engineered from) and itemEpochMillis stamps folders,
// requests, and the sub-environment. itemEpochMillis is also the base of
// the decrementing sort-key counter.
const (
	workspaceEpochMillis int64 = 1749660438111
	itemEpochMillis      int64 = 1749660554120
)

// StableID derives a deterministic Insomnia-style identifier from a seed.
// Equal (prefix, seed) pairs yield equal ids across runs and platforms so
// regenerated collections diff cleanly in version control. MD5 is used as a
// stable content digest, not for security.
func StableID(prefix, seed string) string {
	sum := md5.Sum([]byte(seed))
	return prefix + "_" + hex.EncodeToString(sum[:])
}
