// Package session holds everything one conversation carries from turn to
// turn.
package session

import (
	"tablebot/internal/intent"
	"tablebot/internal/transaction"

	"github.com/google/uuid"
)

// SwitchRequest is a turn held back while the customer decides whether to
// leave an unfinished booking.
type SwitchRequest struct {
	Label intent.Label
	Input string
}

// DiscoveryQuestion is open after the agent asked "general or current?".
type DiscoveryQuestion struct {
	Topic intent.Label
}

type Context struct {
	ID          string
	AgentName   string
	Transaction *transaction.Transaction
	Pending     *transaction.Transaction
	History     intent.History
	Identity    *Identity

	Switch        *SwitchRequest
	ResumeOffered bool
	Discovery     *DiscoveryQuestion
}

func New(agentName string) *Context {
	return &Context{
		ID:          uuid.NewString(),
		AgentName:   agentName,
		Transaction: transaction.New(),
		Identity:    &Identity{},
	}
}

// Interrupt sets the active transaction aside so another skill can take the
// turn. Only a transaction with a date is worth keeping. It reports whether a
// snapshot was taken.
func (c *Context) Interrupt() bool {
	tx := c.Transaction
	kept := false
	if tx.Active() && tx.Slots.Date != nil {
		c.Pending = tx.Clone()
		c.ResumeOffered = false
		kept = true
	}
	tx.Reset()
	return kept
}

// Resume makes the pending snapshot the active transaction.
func (c *Context) Resume() bool {
	if c.Pending == nil {
		return false
	}
	c.Transaction = c.Pending.Clone()
	c.Pending = nil
	c.ResumeOffered = false
	return true
}

func (c *Context) DiscardPending() {
	c.Pending = nil
	c.ResumeOffered = false
}

func (c *Context) HasPending() bool {
	return c.Pending != nil
}

// Identity is the customer name known to the session.
type Identity struct {
	name     string
	previous string
}

func (i *Identity) CurrentName() string {
	return i.name
}

func (i *Identity) SetCurrentName(name string) {
	if name == i.name {
		return
	}
	i.previous = i.name
	i.name = name
}

// PreviousName is the name in use before the last change.
func (i *Identity) PreviousName() string {
	return i.previous
}
