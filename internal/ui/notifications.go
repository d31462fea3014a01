package ui

import (
	"log"

	"github.com/gen2brain/beeep"
)

// DefaultIcon is the freedesktop icon name shown with notifications.
const DefaultIcon = "input-keyboard"

// Notifier abstracts the desktop notification call.
type Notifier func(title, message, icon string) error

// NotificationManager shows desktop notifications when enabled.
type NotificationManager struct {
	useNotifications bool
	appName          string
	icon             string
	notify           Notifier
}

// NewNotificationManager creates a new notification manager
func NewNotificationManager(useNotifications bool, appName string) *NotificationManager {
	return &NotificationManager{
		useNotifications: useNotifications,
		appName:          appName,
		icon:             DefaultIcon,
		notify:           beeep.Notify,
	}
}

// SetEnabled switches notifications on or off, e.g. after a reload.
func (n *NotificationManager) SetEnabled(enabled bool) {
	n.useNotifications = enabled
}

// ShowNotification displays a desktop notification if enabled. The
// message is logged either way.
func (n *NotificationManager) ShowNotification(title, message string) {
	log.Printf("Notification: %s: %s", title, message)
	if !n.useNotifications {
		return
	}
	if err := n.notify(n.appName+": "+title, message, n.icon); err != nil {
		log.Printf("Error showing beeep notification: %v", err)
	}
}
