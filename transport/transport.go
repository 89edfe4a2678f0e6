//go:generate mockgen -destination mock_transport/mock_transport.go github.com/anyproto/anytype-apns/transport Transport

package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"golang.org/x/net/http2"
)

// Transport performs one HTTP round trip to the gateway. Connection, TLS
// and stream failures come back as err; a well-formed HTTP response of any
// status comes back as (status, body, nil).
type Transport interface {
	RoundTrip(ctx context.Context, method, url string, header http.Header, body []byte) (status int, respBody []byte, err error)
}

// New returns the default transport: a net/http client forced onto
// HTTP/2, as APNs requires.
func New() Transport {
	return NewWithClient(&http.Client{
		Transport: &http2.Transport{},
	})
}

// NewWithClient wraps an existing http client. The client must be able to
// negotiate HTTP/2 with the gateway.
func NewWithClient(client *http.Client) Transport {
	return &httpTransport{client: client}
}

type httpTransport struct {
	client *http.Client
}

func (t *httpTransport) RoundTrip(ctx context.Context, method, url string, header http.Header, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}
