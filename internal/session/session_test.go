package session

import (
	"testing"

	"tablebot/internal/transaction"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectingWithDate(c *Context) civil.Date {
	d := civil.Date{Year: 2025, Month: 12, Day: 25}
	c.Transaction.Slots.CustomerName = "Alice"
	c.Transaction.Slots.Date = &d
	c.Transaction.State = transaction.Collecting{}
	return d
}

func TestNew(t *testing.T) {
	c := New("Tabby")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Tabby", c.AgentName)
	assert.True(t, c.Transaction.Idle())
	assert.False(t, c.HasPending())
	assert.Empty(t, c.Identity.CurrentName())
}

func TestInterrupt_SnapshotsTransactionWithDate(t *testing.T) {
	c := New("Tabby")
	d := collectingWithDate(c)

	require.True(t, c.Interrupt())

	assert.True(t, c.Transaction.Idle())
	assert.Nil(t, c.Transaction.Slots.Date)
	require.True(t, c.HasPending())
	assert.Equal(t, d, *c.Pending.Slots.Date)
	assert.Equal(t, "Alice", c.Pending.Slots.CustomerName)
}

func TestInterrupt_DropsTransactionWithoutDate(t *testing.T) {
	c := New("Tabby")
	c.Transaction.Slots.CustomerName = "Alice"
	c.Transaction.State = transaction.Collecting{}

	assert.False(t, c.Interrupt())
	assert.True(t, c.Transaction.Idle())
	assert.False(t, c.HasPending())
}

func TestResume_RestoresSnapshot(t *testing.T) {
	c := New("Tabby")
	d := collectingWithDate(c)
	c.Interrupt()
	c.ResumeOffered = true

	require.True(t, c.Resume())

	assert.True(t, c.Transaction.Active())
	assert.Equal(t, d, *c.Transaction.Slots.Date)
	assert.False(t, c.HasPending())
	assert.False(t, c.ResumeOffered)
	assert.False(t, c.Resume())
}

func TestPendingIsNotAliased(t *testing.T) {
	c := New("Tabby")
	collectingWithDate(c)
	c.Interrupt()

	c.Transaction.Slots.PartySize = 4
	assert.Zero(t, c.Pending.Slots.PartySize)
}

func TestDiscardPending(t *testing.T) {
	c := New("Tabby")
	collectingWithDate(c)
	c.Interrupt()
	c.ResumeOffered = true

	c.DiscardPending()

	assert.False(t, c.HasPending())
	assert.False(t, c.ResumeOffered)
}

func TestIdentity_TracksPreviousName(t *testing.T) {
	var id Identity

	id.SetCurrentName("Alice")
	id.SetCurrentName("Alice")
	assert.Equal(t, "Alice", id.CurrentName())
	assert.Empty(t, id.PreviousName())

	id.SetCurrentName("Ally")
	assert.Equal(t, "Ally", id.CurrentName())
	assert.Equal(t, "Alice", id.PreviousName())
}
