package notify

import "context"

// AdminNotifier pushes operational alerts to the store admins. Deliveries are
// best-effort: callers log failures and move on, they never fail a request
// because an alert did not go out.
type AdminNotifier interface {
	SendAdminAlert(ctx context.Context, text string, imageURLs []string, templateVars map[string]string) error
}
