package model

import (
	"strings"

	"github.com/google/uuid"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindContainer
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

const (
	ContainerPrefix = "container-"
	ItemPrefix      = "item-"
)

// ID is an identifier tagged with the kind of entity it names.
//
// The textual form ("container-<uuid>", "item-<uuid>") is what gets persisted and what
// drag events carry. It is parsed once at the boundary and kept verbatim, so ids written
// by other tools round-trip unchanged.
type ID struct {
	kind Kind
	raw  string
}

// ParseID classifies s by its prefix, falling back to a case-sensitive substring match
// ("container" before "item") for ids that don't follow the prefix convention. The text is
// kept byte for byte, surrounding whitespace included.
func ParseID(s string) ID {
	if s == "" {
		return ID{}
	}
	switch {
	case strings.HasPrefix(s, ContainerPrefix):
		return ID{kind: KindContainer, raw: s}
	case strings.HasPrefix(s, ItemPrefix):
		return ID{kind: KindItem, raw: s}
	case strings.Contains(s, "container"):
		return ID{kind: KindContainer, raw: s}
	case strings.Contains(s, "item"):
		return ID{kind: KindItem, raw: s}
	}
	return ID{kind: KindUnknown, raw: s}
}

func ContainerID(suffix string) ID { return ID{kind: KindContainer, raw: ContainerPrefix + suffix} }
func ItemID(suffix string) ID { return ID{kind: KindItem, raw: ItemPrefix + suffix} }

func (id ID) Kind() Kind { return id.kind }
func (id ID) String() string { return id.raw }
func (id ID) IsZero() bool { return id.raw == "" }
func (id ID) IsContainer() bool { return id.kind == KindContainer }
func (id ID) IsItem() bool { return id.kind == KindItem }
func (id ID) MarshalText() ([]byte, error) { return []byte(id.raw), nil }

func (id *ID) UnmarshalText(b []byte) error {
	*id = ParseID(string(b))
	return nil
}

// IDSource hands out fresh identifiers for new entities.
type IDSource interface {
	NewID(kind Kind) ID
}

// UUIDSource generates ids with a random (v4) UUID suffix.
type UUIDSource struct{}

func (UUIDSource) NewID(kind Kind) ID {
	suffix := uuid.NewString()
	if kind == KindItem {
		return ItemID(suffix)
	}
	return ContainerID(suffix)
}
