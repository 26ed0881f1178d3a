package eli5

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	UserMsg   int // User message accent
	Assistant int // Assistant avatar and busy indicator
	Muted     int // Status bar, placeholders
	Accent    int // Header, headings, links
	UserBg    int // User message background
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Assistant: 2,
		Muted:     8,
		Accent:    5,
		UserBg:    -1,
	}
}
