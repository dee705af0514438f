package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixGraph     = "graph"
	PrefixGroup     = "group"
	PrefixCommand   = "cmd"
	PrefixClipboard = "clip"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewGraphID() string     { return New(PrefixGraph) }
func NewGroupID() string     { return New(PrefixGroup) }
func NewCommandID() string   { return New(PrefixCommand) }
func NewClipboardID() string { return New(PrefixClipboard) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
