package customer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	principalID := uuid.New()

	c := NewCustomer(principalID)

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, principalID, c.PrincipalID)
	assert.Equal(t, MembershipStandard, c.Membership)
}

func TestCustomer_UpdateProfile(t *testing.T) {
	t.Run("updates contact details and normalizes email", func(t *testing.T) {
		c := NewCustomer(uuid.New())
		birthDate := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)

		err := c.UpdateProfile("Ada", "Lovelace", "  Ada@Example.COM ", "555-0100", &birthDate)

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", c.Email)
		assert.Equal(t, "Ada Lovelace", c.FullName())
		assert.Equal(t, &birthDate, c.BirthDate)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		c := NewCustomer(uuid.New())

		err := c.UpdateProfile("Ada", "", "not-an-email", "", nil)

		require.Error(t, err)
		assert.Empty(t, c.Email)
	})

	t.Run("allows clearing the email", func(t *testing.T) {
		c := NewCustomer(uuid.New())

		err := c.UpdateProfile("Ada", "", "", "", nil)

		require.NoError(t, err)
	})
}

func TestCustomer_SetMembership(t *testing.T) {
	c := NewCustomer(uuid.New())

	require.NoError(t, c.SetMembership(MembershipGold))
	assert.Equal(t, MembershipGold, c.Membership)

	err := c.SetMembership(Membership("platinum"))
	require.Error(t, err)
	assert.Equal(t, MembershipGold, c.Membership)
}

func TestMembership_IsValid(t *testing.T) {
	assert.True(t, MembershipStandard.IsValid())
	assert.True(t, MembershipSilver.IsValid())
	assert.True(t, MembershipGold.IsValid())
	assert.False(t, Membership("platinum").IsValid())
}
