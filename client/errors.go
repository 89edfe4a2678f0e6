package client

import (
	"fmt"
	"net/http"
	"time"
)

// unknownReason is reported when the gateway error body carries no
// parseable reason.
const unknownReason = "unknown"

// EncodingError means a notification field cannot be represented on the
// wire: a header value with characters outside printable ASCII, or a
// payload that does not serialize to JSON.
type EncodingError struct {
	Field string
	Cause string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("apns: cannot encode %s: %s", e.Field, e.Cause)
}

// TransportError wraps a connection, TLS or stream failure reported by
// the transport before a well-formed HTTP response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "apns: transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApiError is an explicit rejection from the gateway.
type ApiError struct {
	// The HTTP status of the response.
	Status int
	// Reason as reported by the gateway, or "unknown" when the error
	// body could not be parsed.
	Reason string
	// Timestamp accompanies 410 responses: the last time APNs confirmed
	// the device token was no longer valid for the topic. Milliseconds
	// since the epoch.
	Timestamp int64
}

func (e *ApiError) Error() string {
	msg, ok := reasons[e.Reason]
	if !ok {
		if msg = http.StatusText(e.Status); msg == "" {
			msg = e.Reason
		}
	}
	return fmt.Sprintf("apns: %d: %s", e.Status, msg)
}

// IsToken reports whether the rejection concerns the device token itself,
// meaning the token should not be pushed to again.
func (e *ApiError) IsToken() bool {
	switch e.Reason {
	case "MissingDeviceToken", "BadDeviceToken", "DeviceTokenNotForTopic",
		"Unregistered":
		return true
	}
	return false
}

// Time returns the parsed Timestamp, or the zero time when the gateway
// sent none.
func (e *ApiError) Time() time.Time {
	if e.Timestamp == 0 {
		return time.Time{}
	}
	return time.Unix(e.Timestamp/1000, 0)
}

var reasons = map[string]string{
	"PayloadEmpty":                "the message payload was empty",
	"PayloadTooLarge":             "the message payload was too large",
	"BadTopic":                    "the apns-topic was invalid",
	"TopicDisallowed":             "pushing to this topic is not allowed",
	"BadMessageId":                "the apns-id value is bad",
	"BadExpirationDate":           "the apns-expiration value is bad",
	"BadPriority":                 "the apns-priority value is bad",
	"BadCollapseId":               "the apns-collapse-id value is bad",
	"MissingDeviceToken":          "the device token is not specified in the request path",
	"BadDeviceToken":              "the specified device token was bad",
	"DeviceTokenNotForTopic":      "the device token does not match the specified topic",
	"Unregistered":                "the device token is inactive for the specified topic",
	"DuplicateHeaders":            "one or more headers were repeated",
	"Forbidden":                   "the specified action is not allowed",
	"ExpiredProviderToken":        "the provider token is stale and a new token should be generated",
	"InvalidProviderToken":        "the provider token is not valid or the token signature could not be verified",
	"MissingProviderToken":        "no provider certificate was used to connect and the authorization header is missing",
	"BadPath":                     "the request contained a bad path value",
	"MethodNotAllowed":            "the specified method was not POST",
	"TooManyRequests":             "too many requests were made consecutively to the same device token",
	"TooManyProviderTokenUpdates": "the provider token is being updated too often",
	"IdleTimeout":                 "idle time out",
	"Shutdown":                    "the server is shutting down",
	"InternalServerError":         "an internal server error occurred",
	"ServiceUnavailable":          "the service is unavailable",
	"MissingTopic":                "the apns-topic header of the request was not specified and was required",
}
