package worklog

import "context"

// SettingsStore is the writable side of scope configuration, used by the
// admin surface. Reads of effective settings go through SettingsProvider.
type SettingsStore interface {
	// Values returns the raw stored key/value pairs of a scope. Keys the
	// scope never set are absent.
	Values(ctx context.Context, scopeID uint) (map[string]string, error)

	// SetValues upserts the given key/value pairs for a scope. Keys not
	// present in values are left untouched; an empty value deletes the key
	// so the default applies again.
	SetValues(ctx context.Context, scopeID uint, values map[string]string) error
}
