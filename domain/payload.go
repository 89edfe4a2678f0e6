package domain

import "encoding/json"

// Payload is the aps dictionary of a notification. The zero value
// serializes to an empty object.
type Payload struct {
	Alert            *Alert
	Badge            *int
	Sound            string
	ContentAvailable int
	MutableContent   int
	Category         string
	ThreadId         string
	// Custom fields are merged into the aps object. Standard keys win on
	// collision.
	Custom map[string]any
}

// Alert is the visible part of a notification.
type Alert struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     string `json:"body,omitempty"`
}

func (p Payload) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Custom)+7)
	for k, v := range p.Custom {
		m[k] = v
	}
	if p.Alert != nil {
		m["alert"] = p.Alert
	}
	if p.Badge != nil {
		m["badge"] = *p.Badge
	}
	if p.Sound != "" {
		m["sound"] = p.Sound
	}
	if p.ContentAvailable != 0 {
		m["content-available"] = p.ContentAvailable
	}
	if p.MutableContent != 0 {
		m["mutable-content"] = p.MutableContent
	}
	if p.Category != "" {
		m["category"] = p.Category
	}
	if p.ThreadId != "" {
		m["thread-id"] = p.ThreadId
	}
	return json.Marshal(m)
}
