// Package events provides the task notification mechanism. Use cases emit
// lifecycle events (task created, completed, cancelled) without knowing the
// subscribers; the default subscriber just logs the notification, standing in
// for a real message bus.
package events
