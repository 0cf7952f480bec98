package repository

// DefaultThemeHue is the hue used when no preference has been saved.
const DefaultThemeHue = 220

// legacyThemeHues maps the retired named-theme enum to its hue. The mapping
// is fixed; changing it would silently recolor upgraded installs.
var legacyThemeHues = map[string]int{
	"classic":  220,
	"default":  220,
	"ocean":    210,
	"forest":   145,
	"sunset":   25,
	"candy":    330,
	"lavender": 275,
	"lemon":    65,
}

// HueForLegacyTheme converts a pre-hue named theme to its hue equivalent.
// Unknown names fall back to the default hue so an upgraded install always
// renders something sensible.
func HueForLegacyTheme(name string) int {
	if hue, ok := legacyThemeHues[name]; ok {
		return hue
	}
	return DefaultThemeHue
}
