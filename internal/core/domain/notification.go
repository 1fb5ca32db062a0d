package domain

import "time"

// NotificationLevel grades a user-facing notification.
type NotificationLevel string

const (
	NotifyInfo    NotificationLevel = "info"
	NotifyWarning NotificationLevel = "warning"
	NotifyError   NotificationLevel = "error"
)

// NotificationDuration is how long a transient notification stays visible.
const NotificationDuration = 3 * time.Second

// Notification is a transient message for the user.
type Notification struct {
	Level   NotificationLevel
	Message string

	// DocumentID is set when the notification concerns a single document.
	DocumentID string

	// Err is the underlying error, if any.
	Err error
}

// UnsyncedRow records a document whose local keywords diverge from the server
// because persisting them failed.
type UnsyncedRow struct {
	DocumentID string
	Reason     string
	Since      time.Time
}

// SortColumn names a sortable table column.
type SortColumn string

const (
	SortNone         SortColumn = ""
	SortTitle        SortColumn = "title"
	SortType         SortColumn = "type"
	SortLanguage     SortColumn = "language"
	SortSize         SortColumn = "size"
	SortCreationDate SortColumn = "creation_date"
)

// Valid reports whether the column is sortable.
func (c SortColumn) Valid() bool {
	switch c {
	case SortNone, SortTitle, SortType, SortLanguage, SortSize, SortCreationDate:
		return true
	}
	return false
}

// ViewState is the user's filter and sort choice for the document table.
type ViewState struct {
	Filter     string
	SortColumn SortColumn
	Descending bool
}
