package summary

// Theme holds display settings applied at render time. Sizes are pixels
// in HTML output; text output ignores them.
type Theme struct {
	Name              string
	FontSize          int
	HeaderWeight      string // "bold" or "normal"
	TitleWeight       string
	DataRowPadding    int
	HeaderPadding     int
	SummaryRowPadding int
	FooterPadding     int
	TopBorder         bool
	BottomBorder      bool
}

// DefaultTheme returns the standard roomy presentation.
func DefaultTheme() Theme {
	return Theme{
		Name:              "default",
		FontSize:          16,
		HeaderWeight:      "bold",
		TitleWeight:       "normal",
		DataRowPadding:    8,
		HeaderPadding:     8,
		SummaryRowPadding: 8,
		FooterPadding:     8,
		TopBorder:         true,
		BottomBorder:      true,
	}
}

// CompactTheme returns the dense presentation: smaller font, single
// pixel padding, bold header and title, no outer borders.
func CompactTheme() Theme {
	return Theme{
		Name:              "compact",
		FontSize:          13,
		HeaderWeight:      "bold",
		TitleWeight:       "bold",
		DataRowPadding:    1,
		HeaderPadding:     1,
		SummaryRowPadding: 1,
		FooterPadding:     1,
		TopBorder:         false,
		BottomBorder:      false,
	}
}

// defaultTheme is what newly built tables start from. Writes are meant
// for process setup, not concurrent mutation.
var defaultTheme = DefaultTheme()

// CurrentTheme returns the theme applied to newly built tables.
func CurrentTheme() Theme { return defaultTheme }

// SetDefaultTheme replaces the theme applied to newly built tables.
func SetDefaultTheme(t Theme) { defaultTheme = t }

// ResetDefaultTheme restores the standard theme.
func ResetDefaultTheme() { defaultTheme = DefaultTheme() }
