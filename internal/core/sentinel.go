package core

import "strings"

// Sentinel tokens recognized case-insensitively in raw cells.
const (
	NullSentinel        = "NULL"
	EmptyStringSentinel = "EMPTYSTRING"
)

// normalizeCell rewrites sentinel tokens enabled in cfg. A cell can match at
// most one sentinel.
func normalizeCell(raw string, cfg ParseConfig) rawCell {
	if cfg.ConvertNullSentinel && strings.EqualFold(raw, NullSentinel) {
		return rawCell{null: true}
	}
	if cfg.ConvertEmptyStringSentinel && strings.EqualFold(raw, EmptyStringSentinel) {
		return rawCell{text: ""}
	}
	return rawCell{text: raw}
}
