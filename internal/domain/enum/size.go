package enum

import "fmt"

// Size is a priced variant of a catalog item.
type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

func (s Size) String() string {
	return string(s)
}

// Label returns the human-readable name used on receipts.
func (s Size) Label() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	}
	return string(s)
}

// ParseSize converts a string into a Size, rejecting unknown values.
func ParseSize(s string) (Size, error) {
	sz := Size(s)
	if !sz.Valid() {
		return "", fmt.Errorf("unknown size %q", s)
	}
	return sz, nil
}
