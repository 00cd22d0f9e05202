package domain

import (
	"fmt"
	"strings"
)

// Partition names an isolated subdivision of the vector store.
type Partition string

// Available partitions.
const (
	// PartitionPermanent holds curated reference petitions. It survives restarts
	// and is queried on every retrieval.
	PartitionPermanent Partition = "permanent"

	// PartitionTemporary holds per-session uploads such as annexures.
	// It may be cleared between unrelated sessions.
	PartitionTemporary Partition = "temporary"
)

// Partitions lists every partition in retrieval order.
func Partitions() []Partition {
	return []Partition{PartitionPermanent, PartitionTemporary}
}

// IsValid returns true if the partition is recognised.
func (p Partition) IsValid() bool {
	return p == PartitionPermanent || p == PartitionTemporary
}

// String returns the string representation.
func (p Partition) String() string {
	return string(p)
}

// ParsePartition converts a user supplied name into a Partition.
func ParsePartition(s string) (Partition, error) {
	switch p := Partition(strings.ToLower(strings.TrimSpace(s))); p {
	case PartitionPermanent, PartitionTemporary:
		return p, nil
	case "temp":
		return PartitionTemporary, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPartition, s)
	}
}

// PartitionFor maps the permanent flag used by ingestion callers.
func PartitionFor(permanent bool) Partition {
	if permanent {
		return PartitionPermanent
	}
	return PartitionTemporary
}

// NormaliseCategory turns a draft type or folder name into a category label.
// "Writ_Petition" and "writ petition" both become "writ petition".
func NormaliseCategory(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
