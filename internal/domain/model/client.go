package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sigecred/sgcred/internal/domain/event"
)

// ---------------------------------------------------------------------------
// Client aggregate root
// ---------------------------------------------------------------------------

// ClientContact groups the editable, non-identity fields of a client.
type ClientContact struct {
	Address        string
	Neighborhood   string
	City           string
	PhonePrimary   string
	PhoneSecondary string
	ReferenceName  string
	ReferencePhone string
}

// Client is an immutable aggregate. Mutations return a new copy.
// Identity is the national ID (cédula), unique across the business.
type Client struct {
	id           string
	nationalID   string
	givenNames   string
	surnames     string
	contact      ClientContact
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewClient registers a new client.
func NewClient(nationalID, givenNames, surnames string, contact ClientContact, now time.Time) (Client, error) {
	nationalID = strings.TrimSpace(nationalID)
	givenNames = strings.TrimSpace(givenNames)
	surnames = strings.TrimSpace(surnames)

	if nationalID == "" {
		return Client{}, errors.New("national ID is required")
	}
	if givenNames == "" {
		return Client{}, errors.New("given names are required")
	}
	if surnames == "" {
		return Client{}, errors.New("surnames are required")
	}

	c := Client{
		id:         uuid.New().String(),
		nationalID: nationalID,
		givenNames: givenNames,
		surnames:   surnames,
		contact:    contact,
		createdAt:  now,
		updatedAt:  now,
	}
	c.domainEvents = append(c.domainEvents, event.NewClientRegistered(c.id, nationalID, c.DisplayName()))
	return c, nil
}

// ReconstructClient rebuilds a Client aggregate from persistence.
func ReconstructClient(
	id, nationalID, givenNames, surnames string,
	contact ClientContact,
	createdAt, updatedAt time.Time,
) Client {
	return Client{
		id:         id,
		nationalID: nationalID,
		givenNames: givenNames,
		surnames:   surnames,
		contact:    contact,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Merge overlays incoming registration data on an existing client record;
// registering an already-known cédula updates the record instead of failing.
// Empty incoming contact fields leave the stored values untouched.
func (c Client) Merge(givenNames, surnames string, contact ClientContact, now time.Time) Client {
	next := c
	if s := strings.TrimSpace(givenNames); s != "" {
		next.givenNames = s
	}
	if s := strings.TrimSpace(surnames); s != "" {
		next.surnames = s
	}
	next.contact = mergeContact(c.contact, contact)
	next.updatedAt = now
	next.domainEvents = append(copyEvents(c.domainEvents), event.NewClientRegistered(c.id, c.nationalID, next.DisplayName()))
	return next
}

// UpdateContact replaces the editable contact fields. The cédula and names
// set at registration stay as they are unless re-registered via Merge.
func (c Client) UpdateContact(contact ClientContact, now time.Time) Client {
	next := c
	next.contact = contact
	next.updatedAt = now
	return next
}

func mergeContact(current, incoming ClientContact) ClientContact {
	pick := func(incoming, current string) string {
		if strings.TrimSpace(incoming) != "" {
			return incoming
		}
		return current
	}
	return ClientContact{
		Address:        pick(incoming.Address, current.Address),
		Neighborhood:   pick(incoming.Neighborhood, current.Neighborhood),
		City:           pick(incoming.City, current.City),
		PhonePrimary:   pick(incoming.PhonePrimary, current.PhonePrimary),
		PhoneSecondary: pick(incoming.PhoneSecondary, current.PhoneSecondary),
		ReferenceName:  pick(incoming.ReferenceName, current.ReferenceName),
		ReferencePhone: pick(incoming.ReferencePhone, current.ReferencePhone),
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Client) ID() string                        { return c.id }
func (c Client) NationalID() string                { return c.nationalID }
func (c Client) GivenNames() string                { return c.givenNames }
func (c Client) Surnames() string                  { return c.surnames }
func (c Client) Contact() ClientContact            { return c.contact }
func (c Client) CreatedAt() time.Time              { return c.createdAt }
func (c Client) UpdatedAt() time.Time              { return c.updatedAt }
func (c Client) DomainEvents() []event.DomainEvent { return c.domainEvents }

// DisplayName is the combined name shown on lists, plans and receipts.
func (c Client) DisplayName() string {
	return c.givenNames + " " + c.surnames
}

// ClearEvents returns a copy with an empty event list.
func (c Client) ClearEvents() Client {
	next := c
	next.domainEvents = nil
	return next
}
