package domain

import (
	"strings"
	"time"
)

// Snapshot is the full persisted state of the store. Every mutation
// loads it, changes it in memory and writes it back in one piece.
type Snapshot struct {
	Products  []Product
	Orders    []Order
	Customers []Customer
	Events    []EventRecord
}

// EventRecord is a pending outbox entry, persisted in the same
// document as the entity change that produced it.
type EventRecord struct {
	ID        ID
	Name      string
	Entity    string
	Payload   []byte
	CreatedAt time.Time
}

func (s *Snapshot) FindProduct(id ID) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

func (s *Snapshot) RemoveProduct(id ID) bool {
	for i := range s.Products {
		if s.Products[i].ID == id {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			return true
		}
	}
	return false
}

// InsertOrder puts the order at the front so listings come back
// newest first.
func (s *Snapshot) InsertOrder(order Order) {
	s.Orders = append([]Order{order}, s.Orders...)
}

// UpsertCustomer records one more order for the identity behind email.
// The name on file is kept as-is for returning customers.
func (s *Snapshot) UpsertCustomer(name string, email string) *Customer {
	for i := range s.Customers {
		if strings.EqualFold(s.Customers[i].Email, email) {
			s.Customers[i].TotalOrders++
			return &s.Customers[i]
		}
	}
	s.Customers = append(s.Customers, *NewCustomer(name, email))
	return &s.Customers[len(s.Customers)-1]
}

func (s *Snapshot) AppendEvent(event Event, payload []byte) {
	s.Events = append(s.Events, EventRecord{
		ID:        NewID(),
		Name:      event.GetName(),
		Entity:    event.GetEntityName(),
		Payload:   payload,
		CreatedAt: time.Now(),
	})
}
