package cmdtree

// Settings holds the manager-wide toggles spec §6 enumerates. Modeled on the
// teacher's opts.go Opts struct plus functional-option constructors, rather
// than a generic string-keyed bag, since the full set is small and closed.
type Settings struct {
	// ForceSuggestion coerces an empty suggestion list into one
	// empty-string entry, for UIs that require at least one result.
	ForceSuggestion bool

	// AllowUnsafeRegistration permits tree/registry mutation after the
	// manager has entered the After lifecycle state.
	AllowUnsafeRegistration bool

	// OverrideExistingCommands replaces a prior command sharing a root
	// surface instead of rejecting the insert.
	OverrideExistingCommands bool

	// LiberalFlagParsing enables interleaved flag tokens between
	// positional components (spec §4.5), rather than requiring all flags
	// to trail every positional.
	LiberalFlagParsing bool

	// SuggestionMinDistance is the largest Levenshtein distance (closest.go)
	// at which an UnknownCommand failure still gets a "did you mean" hint:
	// the hint is added when the closest root literal is at this distance
	// or nearer. Zero disables the hint.
	SuggestionMinDistance int
}

// DefaultSettings returns the manager's zero-value-safe defaults: every
// toggle off, no typo-hint distance configured.
func DefaultSettings() Settings {
	return Settings{}
}

// SettingOption mutates a Settings value; passed to NewManager.
type SettingOption func(*Settings)

// WithForceSuggestion sets Settings.ForceSuggestion.
func WithForceSuggestion(v bool) SettingOption {
	return func(s *Settings) { s.ForceSuggestion = v }
}

// WithAllowUnsafeRegistration sets Settings.AllowUnsafeRegistration.
func WithAllowUnsafeRegistration(v bool) SettingOption {
	return func(s *Settings) { s.AllowUnsafeRegistration = v }
}

// WithOverrideExistingCommands sets Settings.OverrideExistingCommands.
func WithOverrideExistingCommands(v bool) SettingOption {
	return func(s *Settings) { s.OverrideExistingCommands = v }
}

// WithLiberalFlagParsing sets Settings.LiberalFlagParsing.
func WithLiberalFlagParsing(v bool) SettingOption {
	return func(s *Settings) { s.LiberalFlagParsing = v }
}

// WithSuggestionMinDistance sets Settings.SuggestionMinDistance.
func WithSuggestionMinDistance(n int) SettingOption {
	return func(s *Settings) { s.SuggestionMinDistance = n }
}
