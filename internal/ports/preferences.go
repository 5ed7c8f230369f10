package ports

import "context"

// Preferences are the locally persisted view settings.
type Preferences struct {
	PageSize int
	BaseURL  string
}

type PreferencesRepository interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, prefs Preferences) error
}
