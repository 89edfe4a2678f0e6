package domain

// Priority is the delivery urgency hint understood by APNs.
type Priority int

const (
	// PriorityImmediate asks APNs to deliver the notification right away.
	PriorityImmediate Priority = 10
	// PriorityPowerConserving lets APNs pick a power-efficient moment.
	PriorityPowerConserving Priority = 5
)

// Notification describes one push to a single device.
type Notification struct {
	// Id becomes the apns-id header. When empty a new uuid is generated
	// during send and returned to the caller.
	Id string
	// DeviceToken is the opaque destination token of the device.
	DeviceToken string
	// Topic is the bundle id of the target app. Required.
	Topic string
	// Payload is the aps dictionary. Any JSON-serializable value works;
	// Payload from this package covers the common fields.
	Payload any
	// Expiration is a unix timestamp after which APNs may discard the
	// notification. Zero means the gateway default.
	Expiration int64
	// Priority of the delivery. Zero means the gateway default.
	Priority Priority
	// CollapseId coalesces multiple notifications into one on the device.
	// APNs enforces a maximum length of 64 bytes; longer values are the
	// caller's error, this library passes them through.
	CollapseId string
}
