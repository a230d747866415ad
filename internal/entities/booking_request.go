package entities

import "encoding/json"

// BookingRequest confirms the session's selected range for one item. The
// item is either looked up by ItemID or passed serialized in Item.
type BookingRequest struct {
	Session string          `json:"session"`
	ItemID  string          `json:"item_id,omitempty"`
	Item    json.RawMessage `json:"item,omitempty"`
}

type PickRequest struct {
	Date string `json:"date"`
}
