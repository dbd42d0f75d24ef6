package types

import "time"

// AlertType categorizes an alert by the agency surface it concerns
type AlertType string

const (
	AlertSecurity AlertType = "SECURITY"
	AlertCustoms  AlertType = "CUSTOMS"
	AlertSystem   AlertType = "SYSTEM"
)

// AlertSeverity indicates how urgently an alert should be acted upon
type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "LOW"
	SeverityMedium AlertSeverity = "MEDIUM"
	SeverityHigh   AlertSeverity = "HIGH"
)

// Alert is an immutable append-only notification record. The message
// references a vehicle plate or declaration MRN so operators can correlate
// alerts with the entity that raised them.
type Alert struct {
	ID        string        `msgpack:"id" json:"id"`
	Timestamp time.Time     `msgpack:"timestamp" json:"timestamp"`
	Type      AlertType     `msgpack:"type" json:"type"`
	Title     string        `msgpack:"title" json:"title"`
	Message   string        `msgpack:"message" json:"message"`
	Severity  AlertSeverity `msgpack:"severity" json:"severity"`
}
