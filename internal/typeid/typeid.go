package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixUser     = "user"
	PrefixFont     = "font"
	PrefixGlyph    = "glyph"
	PrefixPath     = "path"
	PrefixGroup    = "grp"
	PrefixSnapshot = "snap"
	PrefixOp       = "op"
	PrefixAsset    = "asset"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewUserID() string     { return New(PrefixUser) }
func NewFontID() string     { return New(PrefixFont) }
func NewGlyphID() string    { return New(PrefixGlyph) }
func NewPathID() string     { return New(PrefixPath) }
func NewGroupID() string    { return New(PrefixGroup) }
func NewSnapshotID() string { return New(PrefixSnapshot) }
func NewOpID() string       { return New(PrefixOp) }
func NewAssetID() string    { return New(PrefixAsset) }

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
