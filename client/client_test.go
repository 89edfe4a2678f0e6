package client

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anyproto/anytype-apns/domain"
	"github.com/anyproto/anytype-apns/transport/mock_transport"
)

var ctx = context.Background()

func TestClient_SendSuccess(t *testing.T) {
	fx := newFixture(t)
	var sentHeader http.Header
	fx.tr.EXPECT().RoundTrip(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, header http.Header, _ []byte) (int, []byte, error) {
			sentHeader = header
			return 200, nil, nil
		})
	id, err := fx.Send(ctx, domain.Notification{DeviceToken: "devtoken", Topic: "com.example.app"})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, sentHeader.Get("apns-id"))
}

func TestClient_SendExplicitId(t *testing.T) {
	fx := newFixture(t)
	fx.tr.EXPECT().RoundTrip(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(200, nil, nil)
	id, err := fx.Send(ctx, domain.Notification{Id: "X", DeviceToken: "devtoken", Topic: "com.example.app"})
	require.NoError(t, err)
	assert.Equal(t, "X", id)
}

func TestClient_ApiError(t *testing.T) {
	fx := newFixture(t)
	fx.tr.EXPECT().RoundTrip(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(400, []byte(`{"reason":"BadDeviceToken"}`), nil)
	_, err := fx.Send(ctx, domain.Notification{DeviceToken: "devtoken", Topic: "com.example.app"})
	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "BadDeviceToken", apiErr.Reason)
}

func TestClient_TransportError(t *testing.T) {
	fx := newFixture(t)
	cause := errors.New("connection refused")
	fx.tr.EXPECT().RoundTrip(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, nil, cause)
	_, err := fx.Send(ctx, domain.Notification{DeviceToken: "devtoken", Topic: "com.example.app"})
	var trErr *TransportError
	require.ErrorAs(t, err, &trErr)
	assert.ErrorIs(t, err, cause)
}

func TestClient_EncodeShortCircuit(t *testing.T) {
	// the mock has no expectations: a network call would fail the test
	fx := newFixture(t)
	_, err := fx.Send(ctx, domain.Notification{DeviceToken: "devtoken"})
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
}

func TestClient_TokenReuse(t *testing.T) {
	fx := newFixture(t)
	var auth []string
	fx.tr.EXPECT().RoundTrip(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, header http.Header, _ []byte) (int, []byte, error) {
			auth = append(auth, header.Get("authorization"))
			return 200, nil, nil
		}).Times(2)
	_, err := fx.Send(ctx, domain.Notification{DeviceToken: "devtoken", Topic: "com.example.app"})
	require.NoError(t, err)
	_, err = fx.Send(ctx, domain.Notification{DeviceToken: "devtoken", Topic: "com.example.app"})
	require.NoError(t, err)
	require.Len(t, auth, 2)
	assert.Equal(t, auth[0], auth[1])
}

func TestClient_SetProduction(t *testing.T) {
	fx := newFixture(t)
	var urls []string
	fx.tr.EXPECT().RoundTrip(gomock.Any(), http.MethodPost, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, url string, _ http.Header, _ []byte) (int, []byte, error) {
			urls = append(urls, url)
			return 200, nil, nil
		}).Times(2)
	_, err := fx.Send(ctx, domain.Notification{DeviceToken: "devtoken", Topic: "com.example.app"})
	require.NoError(t, err)
	fx.SetProduction(true)
	_, err = fx.Send(ctx, domain.Notification{DeviceToken: "devtoken", Topic: "com.example.app"})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "https://api.sandbox.push.apple.com/3/device/devtoken", urls[0])
	assert.Equal(t, "https://api.push.apple.com/3/device/devtoken", urls[1])
}

func TestClient_BadKey(t *testing.T) {
	_, err := NewClient(Config{TeamId: "team", KeyId: "key", Key: "not a key"}, nil)
	require.Error(t, err)
}

func TestApns_Component(t *testing.T) {
	a := new(app.App)
	a.Register(&testConfig{conf: Config{
		TeamId: "TEAM123456",
		KeyId:  "KEY1234567",
		Key:    testKeyPEM(t),
	}}).Register(New())
	require.NoError(t, a.Start(ctx))
	defer func() {
		require.NoError(t, a.Close(ctx))
	}()
	c := a.MustComponent(CName).(Apns)
	require.NotNil(t, c)
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	tr := mock_transport.NewMockTransport(ctrl)
	c, err := NewClient(Config{
		TeamId: "TEAM123456",
		KeyId:  "KEY1234567",
		Key:    testKeyPEM(t),
	}, tr)
	require.NoError(t, err)
	return &fixture{Client: c, tr: tr}
}

type fixture struct {
	*Client
	tr *mock_transport.MockTransport
}

type testConfig struct {
	conf Config
}

func (t *testConfig) Init(a *app.App) (err error) {
	return
}

func (t *testConfig) Name() (name string) {
	return "config"
}

func (t *testConfig) GetApns() Config {
	return t.conf
}

func testKeyPEM(t *testing.T) string {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}
