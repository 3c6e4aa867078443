package domain

import (
	"github.com/google/uuid"

	"multibank-ledger/shared"
)

// Client is a bank customer. Clients missing an address or a passport number
// are suspicious and subject to the bank's fraud limits.
type Client struct {
	ID      shared.ClientID `json:"id"`
	Name    string          `json:"name"`
	Surname string          `json:"surname"`

	address    *string
	passport   *string
	suspicious bool
}

type ClientOption func(*Client)

func WithAddress(address string) ClientOption {
	return func(c *Client) { c.address = &address }
}

func WithPassportNumber(passport string) ClientOption {
	return func(c *Client) { c.passport = &passport }
}

func NewClient(name, surname string, opts ...ClientOption) *Client {
	c := &Client{
		ID:      shared.ClientID(uuid.NewString()),
		Name:    name,
		Surname: surname,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.suspicious = c.address == nil || c.passport == nil
	return c
}

// IsSuspicious reports the flag computed at construction. Filling in the
// identity fields later does not clear it.
func (c *Client) IsSuspicious() bool {
	return c.suspicious
}

func (c *Client) SetAddress(address string) {
	c.address = &address
}

func (c *Client) SetPassportNumber(passport string) {
	c.passport = &passport
}

func (c *Client) Address() (string, bool) {
	if c.address == nil {
		return "", false
	}
	return *c.address, true
}

func (c *Client) PassportNumber() (string, bool) {
	if c.passport == nil {
		return "", false
	}
	return *c.passport, true
}

func (c *Client) String() string {
	return c.Name + " " + c.Surname
}
