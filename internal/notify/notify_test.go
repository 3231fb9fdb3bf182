package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/pkg/utils"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func whatsAppBooking() *entity.Booking {
	first, last, number, method := "Ana", "Lima", "+351911111111", entity.DeliveryMethodWhatsApp
	b := &entity.Booking{
		Amount:   19,
		Currency: "USD",
		PassengerDetails: entity.PassengerDetails{
			FirstName:      &first,
			LastName:       &last,
			DeliveryMethod: &method,
			WhatsAppNumber: &number,
		},
	}
	b.ID = uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000001")
	return b
}

func TestWhatsAppClient_SendText(t *testing.T) {
	var got textMessage
	var auth, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient(utils.WhatsAppConfig{BaseURL: server.URL + "/", PhoneNumberID: "123", AccessToken: "tok"})
	require.NoError(t, client.SendText(context.Background(), "+351911111111", "hello"))

	assert.Equal(t, "/123/messages", path)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "351911111111", got.To)
	assert.Equal(t, "hello", got.Text.Body)
}

func TestWhatsAppClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad token"}}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient(utils.WhatsAppConfig{BaseURL: server.URL, PhoneNumberID: "123", AccessToken: "bad"})
	err := client.SendText(context.Background(), "+351911111111", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

type recordingSender struct {
	to, body string
	calls    int
}

func (s *recordingSender) SendText(_ context.Context, to, body string) error {
	s.to, s.body = to, body
	s.calls++
	return nil
}

type recordingPublisher struct {
	key     string
	payload any
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload any) error {
	p.key, p.payload = key, payload
	return nil
}

func TestDirectNotifier(t *testing.T) {
	sender := &recordingSender{}

	err := NewDirectNotifier(sender, zap.NewNop()).NotifyBookingPaid(context.Background(), whatsAppBooking())

	require.NoError(t, err)
	assert.Equal(t, "+351911111111", sender.to)
	assert.Contains(t, sender.body, "Hi Ana Lima")
	assert.Contains(t, sender.body, "19.00 USD")
	assert.Contains(t, sender.body, "A1B2C3D4")
}

func TestQueueNotifierAndHandlerRoundTrip(t *testing.T) {
	publisher := &recordingPublisher{}
	booking := whatsAppBooking()

	require.NoError(t, NewQueueNotifier(publisher, zap.NewNop()).NotifyBookingPaid(context.Background(), booking))
	assert.Equal(t, booking.ID.String(), publisher.key)

	value, err := json.Marshal(publisher.payload)
	require.NoError(t, err)

	sender := &recordingSender{}
	handle := Handler(sender, zap.NewNop())
	require.NoError(t, handle(context.Background(), kafka.Message{Key: []byte(publisher.key), Value: value}))

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "+351911111111", sender.to)
}

func TestHandler_SkipsGarbage(t *testing.T) {
	sender := &recordingSender{}
	handle := Handler(sender, zap.NewNop())

	assert.NoError(t, handle(context.Background(), kafka.Message{Value: []byte("not json")}))
	assert.NoError(t, handle(context.Background(), kafka.Message{Value: []byte(`{"type":"booking.cancelled"}`)}))
	assert.Equal(t, 0, sender.calls)
}

func TestNotifier_NoRecipient(t *testing.T) {
	booking := whatsAppBooking()
	booking.PassengerDetails.WhatsAppNumber = nil

	err := NewQueueNotifier(&recordingPublisher{}, zap.NewNop()).NotifyBookingPaid(context.Background(), booking)
	assert.ErrorIs(t, err, ErrNoRecipient)
}
