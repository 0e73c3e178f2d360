package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{"exchangeRate": "35.50"}

	before := time.Now()
	evt := NewEvent(EventTypeUpdated, EntityTypeExchangeRate, payload)
	after := time.Now()

	assert.Equal(t, "exchange_rate.updated", evt.Type)
	assert.Equal(t, EntityTypeExchangeRate, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
	assert.Equal(t, time.UTC, evt.Timestamp.Location())
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name         string
		event        Event
		expectedType string
		entity       EntityType
	}{
		{"exchange rate", ExchangeRateUpdated("35.50"), "exchange_rate.updated", EntityTypeExchangeRate},
		{"notification", NotificationMessage(domain.Message{Severity: domain.SeveritySuccess}), "notification.message", EntityTypeNotification},
		{"account", AccountChanged(&domain.Account{Login: "cashier"}), "account.changed", EntityTypeAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedType, tt.event.Type)
			assert.Equal(t, tt.entity, tt.event.Entity)
		})
	}
}

func TestNotificationMessage_ToJSON(t *testing.T) {
	evt := NotificationMessage(domain.Message{
		Severity: domain.SeveritySuccess,
		Summary:  "Actualizado",
		Detail:   "Tipo de cambio actualizado",
		Life:     domain.DefaultMessageLife,
	})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "notification.message", decoded["type"])
	assert.Equal(t, "notification", decoded["entity"])
	assert.Contains(t, decoded, "timestamp")

	payload := decoded["payload"].(map[string]interface{})
	assert.Equal(t, "success", payload["severity"])
	assert.Equal(t, "Actualizado", payload["summary"])
	assert.Equal(t, "Tipo de cambio actualizado", payload["detail"])
	assert.Equal(t, float64(3000), payload["life"])
}

func TestAccountChanged_LoggedOut(t *testing.T) {
	data, err := AccountChanged(nil).ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "account.changed", decoded["type"])
	assert.Nil(t, decoded["payload"])
}
