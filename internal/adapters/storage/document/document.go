// Package document holds the persisted shapes of the store snapshot.
// Amounts are stored as decimal numbers to keep the document readable;
// the mapping converts to and from cents at the boundary.
package document

import (
	"time"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
)

type ProductDocument struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type LineItemDocument struct {
	Title     string  `json:"title" bson:"title"`
	UnitPrice float64 `json:"unitPrice" bson:"unit_price"`
	Currency  string  `json:"currency" bson:"currency"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type OrderDocument struct {
	ID           string             `json:"id" bson:"id"`
	CustomerName string             `json:"customerName" bson:"customer_name"`
	Date         time.Time          `json:"date" bson:"date"`
	Total        float64            `json:"total" bson:"total"`
	Items        []LineItemDocument `json:"items" bson:"items"`
}

type CustomerDocument struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Email       string `json:"email" bson:"email"`
	TotalOrders int    `json:"totalOrders" bson:"total_orders"`
}

type EventDocument struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Entity    string    `json:"entity" bson:"entity"`
	Payload   []byte    `json:"payload" bson:"payload"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type SnapshotDocument struct {
	Products  []ProductDocument  `json:"products" bson:"products"`
	Orders    []OrderDocument    `json:"orders" bson:"orders"`
	Customers []CustomerDocument `json:"customers" bson:"customers"`
	Events    []EventDocument    `json:"events" bson:"events"`
}

func ToSnapshotDocument(snapshot *domain.Snapshot) *SnapshotDocument {
	doc := &SnapshotDocument{
		Products:  make([]ProductDocument, len(snapshot.Products)),
		Orders:    make([]OrderDocument, len(snapshot.Orders)),
		Customers: make([]CustomerDocument, len(snapshot.Customers)),
		Events:    make([]EventDocument, len(snapshot.Events)),
	}

	for i, p := range snapshot.Products {
		doc.Products[i] = ProductDocument{
			ID:          string(p.ID),
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.Float64(),
			Stock:       p.Stock,
			Image:       p.Image,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
	}

	for i, o := range snapshot.Orders {
		items := make([]LineItemDocument, len(o.Items))
		for j, item := range o.Items {
			items[j] = LineItemDocument{
				Title:     item.Title,
				UnitPrice: item.UnitPrice.Float64(),
				Currency:  item.Currency,
				Quantity:  item.Quantity,
			}
		}
		doc.Orders[i] = OrderDocument{
			ID:           string(o.ID),
			CustomerName: o.CustomerName,
			Date:         o.Date,
			Total:        o.Total.Float64(),
			Items:        items,
		}
	}

	for i, c := range snapshot.Customers {
		doc.Customers[i] = CustomerDocument{
			ID:          string(c.ID),
			Name:        c.Name,
			Email:       c.Email,
			TotalOrders: c.TotalOrders,
		}
	}

	for i, e := range snapshot.Events {
		doc.Events[i] = EventDocument{
			ID:        string(e.ID),
			Name:      e.Name,
			Entity:    e.Entity,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		}
	}

	return doc
}

func (doc *SnapshotDocument) ToDomain() *domain.Snapshot {
	snapshot := &domain.Snapshot{
		Products:  make([]domain.Product, len(doc.Products)),
		Orders:    make([]domain.Order, len(doc.Orders)),
		Customers: make([]domain.Customer, len(doc.Customers)),
		Events:    make([]domain.EventRecord, len(doc.Events)),
	}

	for i, p := range doc.Products {
		snapshot.Products[i] = domain.Product{
			ID:          domain.ID(p.ID),
			Name:        p.Name,
			Description: p.Description,
			Price:       domain.NewAmountFromFloat(p.Price),
			Stock:       p.Stock,
			Image:       p.Image,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
	}

	for i, o := range doc.Orders {
		items := make([]domain.LineItem, len(o.Items))
		for j, item := range o.Items {
			items[j] = domain.LineItem{
				Title:     item.Title,
				UnitPrice: domain.NewAmountFromFloat(item.UnitPrice),
				Currency:  item.Currency,
				Quantity:  item.Quantity,
			}
		}
		snapshot.Orders[i] = domain.Order{
			ID:           domain.ID(o.ID),
			CustomerName: o.CustomerName,
			Date:         o.Date,
			Total:        domain.NewAmountFromFloat(o.Total),
			Items:        items,
		}
	}

	for i, c := range doc.Customers {
		snapshot.Customers[i] = domain.Customer{
			ID:          domain.ID(c.ID),
			Name:        c.Name,
			Email:       c.Email,
			TotalOrders: c.TotalOrders,
		}
	}

	for i, e := range doc.Events {
		snapshot.Events[i] = domain.EventRecord{
			ID:        domain.ID(e.ID),
			Name:      e.Name,
			Entity:    e.Entity,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		}
	}

	return snapshot
}
