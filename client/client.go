package client

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anyproto/anytype-apns/domain"
	"github.com/anyproto/anytype-apns/token"
	"github.com/anyproto/anytype-apns/transport"
)

const CName = "apns.client"

var log = logger.NewNamed(CName)

func New() Apns {
	return new(apns)
}

// Apns is the component form of the client, wired from the "config"
// component the same way the other push providers are.
type Apns interface {
	Send(ctx context.Context, n domain.Notification) (id string, err error)
	SetProduction(production bool)
	app.Component
}

type apns struct {
	*Client
}

func (a *apns) Init(ap *app.App) (err error) {
	conf := ap.MustComponent("config").(configSource).GetApns()
	if a.Client, err = NewClient(conf, transport.New()); err != nil {
		return
	}
	if m, ok := ap.Component(metric.CName).(metric.Metric); ok {
		registerMetrics(m.Registry(), a.Client)
	}
	return
}

func (a *apns) Name() (name string) {
	return CName
}

// Client delivers notifications to APNs, authenticating with short-lived
// provider tokens signed by the configured key. One instance owns one
// identity and one token cache; instances are fully independent. Safe for
// concurrent use: Send blocks only at the network boundary.
type Client struct {
	cache      *token.Cache
	transport  transport.Transport
	production atomic.Bool
	metrics    metrics
}

// NewClient validates the configured signing key and returns a client.
// No connection is made until the first Send.
func NewClient(conf Config, tr transport.Transport) (*Client, error) {
	key, err := conf.privateKey()
	if err != nil {
		return nil, err
	}
	signer, err := token.NewSigner(conf.TeamId, conf.KeyId, key)
	if err != nil {
		return nil, err
	}
	c := &Client{
		cache:     token.NewCache(signer),
		transport: tr,
	}
	c.production.Store(conf.Production)
	return c, nil
}

// SetProduction switches the endpoint for subsequent sends. The cached
// provider token stays valid across the switch.
func (c *Client) SetProduction(production bool) {
	c.production.Store(production)
}

// Send delivers one notification and returns its resolved apns-id. A
// missing notification id is generated here and returned on success. One
// round trip, no internal retries; retry policy belongs to the caller,
// cancellation to ctx.
func (c *Client) Send(ctx context.Context, n domain.Notification) (string, error) {
	if n.Id == "" {
		n.Id = uuid.NewString()
	}
	jwt, err := c.cache.Token()
	if err != nil {
		return "", err
	}
	req, err := buildRequest(n, jwt, c.production.Load())
	if err != nil {
		return "", err
	}
	status, body, err := c.transport.RoundTrip(ctx, http.MethodPost, req.url, req.header, req.body)
	if err != nil {
		c.metrics.sendErrors.Add(1)
		return "", &TransportError{Err: err}
	}
	id, err := classify(n.Id, status, body)
	if err != nil {
		c.metrics.sendErrors.Add(1)
		return "", err
	}
	c.metrics.sendCount.Add(1)
	log.Debug("push sent", zap.String("id", id), zap.Int("status", status))
	return id, nil
}
