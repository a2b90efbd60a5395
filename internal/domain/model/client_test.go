package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigecred/sgcred/internal/domain/event"
	"github.com/sigecred/sgcred/internal/domain/model"
)

func TestNewClient(t *testing.T) {
	now := time.Now().UTC()
	contact := model.ClientContact{
		Address:      "Calle 1",
		City:         "Asunción",
		PhonePrimary: "0981 123456",
	}

	client, err := model.NewClient("1234567", "María", "González", contact, now)
	require.NoError(t, err)

	assert.NotEmpty(t, client.ID())
	assert.Equal(t, "1234567", client.NationalID())
	assert.Equal(t, "María González", client.DisplayName())
	assert.Equal(t, contact, client.Contact())

	require.Len(t, client.DomainEvents(), 1)
	registered, ok := client.DomainEvents()[0].(event.ClientRegistered)
	require.True(t, ok)
	assert.Equal(t, client.ID(), registered.AggregateID())
}

func TestNewClient_TrimsAndValidates(t *testing.T) {
	now := time.Now().UTC()

	t.Run("trims whitespace", func(t *testing.T) {
		client, err := model.NewClient(" 1234567 ", " María ", " González ", model.ClientContact{}, now)
		require.NoError(t, err)
		assert.Equal(t, "1234567", client.NationalID())
		assert.Equal(t, "María González", client.DisplayName())
	})

	t.Run("missing national ID", func(t *testing.T) {
		_, err := model.NewClient("", "María", "González", model.ClientContact{}, now)
		assert.Error(t, err)
	})

	t.Run("missing given names", func(t *testing.T) {
		_, err := model.NewClient("1234567", "", "González", model.ClientContact{}, now)
		assert.Error(t, err)
	})

	t.Run("missing surnames", func(t *testing.T) {
		_, err := model.NewClient("1234567", "María", "   ", model.ClientContact{}, now)
		assert.Error(t, err)
	})
}

func TestMerge_OverlaysOnlyNonEmptyFields(t *testing.T) {
	now := time.Now().UTC()
	client, err := model.NewClient("1234567", "María", "González", model.ClientContact{
		Address:      "Calle 1",
		City:         "Asunción",
		PhonePrimary: "0981 123456",
	}, now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	merged := client.Merge("María Elena", "", model.ClientContact{
		City:           "Luque",
		PhoneSecondary: "0982 654321",
	}, later)

	// Incoming non-empty fields win, empty ones keep the stored value.
	assert.Equal(t, "María Elena González", merged.DisplayName())
	assert.Equal(t, "Calle 1", merged.Contact().Address)
	assert.Equal(t, "Luque", merged.Contact().City)
	assert.Equal(t, "0981 123456", merged.Contact().PhonePrimary)
	assert.Equal(t, "0982 654321", merged.Contact().PhoneSecondary)

	// Identity never changes.
	assert.Equal(t, client.ID(), merged.ID())
	assert.Equal(t, "1234567", merged.NationalID())
	assert.Equal(t, later, merged.UpdatedAt())
}

func TestUpdateContact_ReplacesWholeContact(t *testing.T) {
	now := time.Now().UTC()
	client, err := model.NewClient("1234567", "María", "González", model.ClientContact{
		Address: "Calle 1",
		City:    "Asunción",
	}, now)
	require.NoError(t, err)

	updated := client.UpdateContact(model.ClientContact{City: "Luque"}, now.Add(time.Hour))

	assert.Equal(t, "Luque", updated.Contact().City)
	assert.Empty(t, updated.Contact().Address)
}
