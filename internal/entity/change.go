package entity

import "time"

const (
	CollectionLeads        = "leads"
	CollectionAppointments = "appointments"
)

type ChangeOp string

const (
	ChangeCreated ChangeOp = "created"
	ChangeUpdated ChangeOp = "updated"
	ChangeDeleted ChangeOp = "deleted"
)

// ChangeEvent avisa os painéis abertos que uma coleção mudou e precisa ser recarregada.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	Op         ChangeOp  `json:"op"`
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
}
