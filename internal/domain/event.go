package domain

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// AddressEvent is broadcast whenever an address is written.
type AddressEvent struct {
	Type      EventType `json:"type"`
	AddressID int64     `json:"addressId"`
	Address   *Address  `json:"address,omitempty"`
}
