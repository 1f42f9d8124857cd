package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-queue/internal/models"
)

var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func TestBuildAddressesCalledUser(t *testing.T) {
	e := &models.QueueEntry{ID: "e1", SalonID: "s1"}
	u := &models.User{FirstName: "Ana", Phone: "+5511999990000"}
	s := &models.Salon{Name: "Glow Studio"}

	n := Build(e, u, s, now)

	assert.Equal(t, "Hi Ana, it's your turn at Glow Studio. Please come in!", n.Message)
	assert.Equal(t, "+5511999990000", n.Phone)
	assert.Equal(t, now, n.Timestamp)
	assert.True(t, n.Deliverable())
}

func TestBuildFallsBackForAnonymousEntry(t *testing.T) {
	n := Build(&models.QueueEntry{ID: "e2"}, nil, nil, now)

	assert.Equal(t, "Hi Customer, it's your turn at the salon. Please come in!", n.Message)
	assert.Empty(t, n.Phone)
	assert.False(t, n.Deliverable())
}

func TestNewCustomerCalledTask(t *testing.T) {
	n := Notification{EntryID: "e1", Message: "hi", Phone: "123", Timestamp: now}

	task, err := NewCustomerCalledTask(n)
	require.NoError(t, err)
	assert.Equal(t, TypeCustomerCalled, task.Type())

	var got Notification
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, n.Phone, got.Phone)
}

type recordingSender struct {
	phone, message string
	err            error
}

func (r *recordingSender) Send(ctx context.Context, phone, message string) error {
	r.phone, r.message = phone, message
	return r.err
}

func TestHandleCustomerCalled(t *testing.T) {
	sender := &recordingSender{}
	h := NewTaskHandler(sender)

	task, err := NewCustomerCalledTask(Notification{EntryID: "e1", Message: "your turn", Phone: "123"})
	require.NoError(t, err)

	require.NoError(t, h.HandleCustomerCalled(context.Background(), task))
	assert.Equal(t, "123", sender.phone)
	assert.Equal(t, "your turn", sender.message)
}

func TestHandleCustomerCalledSkipsMissingPhone(t *testing.T) {
	sender := &recordingSender{}
	h := NewTaskHandler(sender)

	task, err := NewCustomerCalledTask(Notification{EntryID: "e1", Message: "your turn"})
	require.NoError(t, err)

	require.NoError(t, h.HandleCustomerCalled(context.Background(), task))
	assert.Empty(t, sender.phone)
}

func TestHandleCustomerCalledRejectsBrokenPayload(t *testing.T) {
	h := NewTaskHandler(&recordingSender{})

	err := h.HandleCustomerCalled(context.Background(), asynq.NewTask(TypeCustomerCalled, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestSMSClientSend(t *testing.T) {
	var got smsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewSMSClient(srv.URL, "key")
	require.NoError(t, c.Send(context.Background(), "123", "hello"))
	assert.Equal(t, "123", got.Recipient)
	assert.Equal(t, "hello", got.Message)
}

func TestSMSClientSendReportsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewSMSClient(srv.URL, "key").Send(context.Background(), "123", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestNewSenderDefaultsToLog(t *testing.T) {
	assert.IsType(t, LogSender{}, NewSender("", ""))
	assert.IsType(t, &SMSClient{}, NewSender("http://sms.test", "k"))
}
