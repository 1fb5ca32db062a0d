package driven

import "github.com/Alma-hanif/infinitag/internal/core/domain"

// Notifier delivers transient user-facing messages.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(n domain.Notification)
}
