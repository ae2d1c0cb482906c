package dashboard

import "context"

// NotificationsClient defines the minimal interface needed from an external
// notifications service.
type NotificationsClient interface {
	PublishLayoutEvent(ctx context.Context, event LayoutEvent) error
}

// NotificationsHook forwards layout events to an external notifications client.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
}

// LayoutUpdated publishes events to the configured notifications client.
func (h *NotificationsHook) LayoutUpdated(ctx context.Context, event LayoutEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.PublishLayoutEvent(ctx, event)
}

// RefreshHooks fans a layout event out to several hooks in order,
// stopping at the first error. Nil entries are skipped.
type RefreshHooks []RefreshHook

func (hooks RefreshHooks) LayoutUpdated(ctx context.Context, event LayoutEvent) error {
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook.LayoutUpdated(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
