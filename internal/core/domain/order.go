package domain

import "time"

type Order struct {
	ID           ID
	CustomerName string
	Date         time.Time
	Total        Amount
	Items        []LineItem
}

// LineItem is a frozen snapshot of a product at order time; the unit
// price is never re-read from the catalog.
type LineItem struct {
	Title     string
	UnitPrice Amount
	Currency  string
	Quantity  int
}

func (i *LineItem) Subtotal() Amount {
	return i.UnitPrice.Multiply(i.Quantity)
}

func NewLineItem(title string, unitPrice Amount, currency string, quantity int) *LineItem {
	return &LineItem{
		Title:     title,
		UnitPrice: unitPrice,
		Currency:  currency,
		Quantity:  quantity,
	}
}

func CalculateTotal(items []LineItem) Amount {
	total := Amount(0)
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func NewOrder(customerName string, items []LineItem) *Order {
	return &Order{
		ID:           NewID(),
		CustomerName: customerName,
		Date:         time.Now(),
		Total:        CalculateTotal(items),
		Items:        items,
	}
}

type OrderCreatedEvent struct {
	OrderID       ID        `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	Total         float64   `json:"total"`
	Date          time.Time `json:"date"`
}

func (e *OrderCreatedEvent) GetName() string {
	return "order.created"
}

func (e *OrderCreatedEvent) GetEntityName() string {
	return "order"
}

func NewOrderCreatedEvent(order *Order, customerEmail string) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		OrderID:       order.ID,
		CustomerEmail: customerEmail,
		Total:         order.Total.Float64(),
		Date:          order.Date,
	}
}
