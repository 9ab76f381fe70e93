package extras

import "github.com/kyleGrealis/sumExtras/internal/summary"

// Compact switches one table to the dense presentation.
func Compact(t *summary.Table) *summary.Table {
	return t.WithTheme(summary.CompactTheme())
}

// UseCompactTheme makes every subsequently built table start compact.
// Meant to be called once during setup.
func UseCompactTheme() {
	summary.SetDefaultTheme(summary.CompactTheme())
}

// ResetTheme restores the standard default theme.
func ResetTheme() {
	summary.ResetDefaultTheme()
}
