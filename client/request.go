package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anyproto/anytype-apns/domain"
)

const (
	hostProduction  = "https://api.push.apple.com"
	hostDevelopment = "https://api.sandbox.push.apple.com"
)

type request struct {
	url    string
	header http.Header
	body   []byte
}

// apsBody is the wire body: the payload nested under the aps key.
type apsBody struct {
	Aps any `json:"aps"`
}

// buildRequest maps a notification onto the gateway wire format. The
// notification id must already be resolved. Optional headers are omitted
// entirely when the field is unset, never sent empty.
func buildRequest(n domain.Notification, jwt string, production bool) (*request, error) {
	root := hostDevelopment
	if production {
		root = hostProduction
	}
	if err := checkHeaderValue("device token", n.DeviceToken); err != nil {
		return nil, err
	}
	if err := checkHeaderValue("apns-id", n.Id); err != nil {
		return nil, err
	}
	if n.Topic == "" {
		return nil, &EncodingError{Field: "apns-topic", Cause: "empty topic"}
	}
	if err := checkHeaderValue("apns-topic", n.Topic); err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("authorization", "bearer "+jwt)
	header.Set("apns-id", n.Id)
	header.Set("apns-topic", n.Topic)
	if n.Expiration != 0 {
		header.Set("apns-expiration", strconv.FormatInt(n.Expiration, 10))
	}
	if n.Priority != 0 {
		header.Set("apns-priority", strconv.Itoa(int(n.Priority)))
	}
	if n.CollapseId != "" {
		if err := checkHeaderValue("apns-collapse-id", n.CollapseId); err != nil {
			return nil, err
		}
		header.Set("apns-collapse-id", n.CollapseId)
	}

	body, err := json.Marshal(apsBody{Aps: n.Payload})
	if err != nil {
		return nil, &EncodingError{Field: "payload", Cause: err.Error()}
	}
	return &request{
		url:    fmt.Sprintf("%s/3/device/%s", root, n.DeviceToken),
		header: header,
		body:   body,
	}, nil
}

// checkHeaderValue rejects values the gateway cannot receive in a header
// field or the request path.
func checkHeaderValue(field, value string) error {
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return &EncodingError{Field: field, Cause: fmt.Sprintf("invalid character %q", value[i])}
		}
	}
	return nil
}
