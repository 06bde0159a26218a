package domain

// ChangeType indicates the kind of change observed on role storage.
type ChangeType int

const (
	// ChangeCreated indicates the role file appeared.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates the role file was rewritten.
	ChangeUpdated

	// ChangeDeleted indicates the role file was removed or renamed away.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// StoreChange is emitted when persisted role storage changes on disk.
type StoreChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected file.
	Path string

	// Roles is the content read after the change. Empty for deletions.
	Roles []Role

	// Err is set when the changed file could not be read back.
	Err error
}
