// Package queue defines the message payload exchanged over the broker
// and the background consumer that delivers organizer notifications.
package queue

// NotificationQueueName is the durable queue organizer notifications
// travel through.
const NotificationQueueName = "organizer.notifications"

// OrganizerNotification is published whenever a seat is successfully
// booked. It carries everything a downstream consumer needs to deliver
// the message without querying the primary database.
type OrganizerNotification struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	QueuedAt string `json:"queued_at"`
}
