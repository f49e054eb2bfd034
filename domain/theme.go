package domain

// Theme is the user-facing color scheme preference.
// The symbolic value "system" is stored as-is and only resolved to a
// concrete scheme at render time.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// DefaultTheme is the fallback for missing or unreadable stored values.
const DefaultTheme = ThemeLight

// ParseTheme maps a stored string to a Theme, falling back to the default
// on anything unknown. Corrupt storage must never surface as an error.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return Theme(s)
	default:
		return DefaultTheme
	}
}

// Next cycles light -> dark -> system -> light.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeSystem
	default:
		return ThemeLight
	}
}

// Resolve collapses the symbolic "system" value to a concrete scheme using
// the host preference. Light and dark resolve to themselves.
func (t Theme) Resolve(systemDark bool) Theme {
	if t != ThemeSystem {
		return t
	}
	if systemDark {
		return ThemeDark
	}
	return ThemeLight
}
