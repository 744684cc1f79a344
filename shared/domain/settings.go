package domain

// Settings are free-form user preferences (theme, caret style, test length...).
// The server owns the schema; the client only forwards changed keys.
type Settings map[string]any

// Merge applies patch on top of s, key by key.
func (s Settings) Merge(patch map[string]any) Settings {
	if s == nil {
		s = Settings{}
	}
	for k, v := range patch {
		s[k] = v
	}
	return s
}
