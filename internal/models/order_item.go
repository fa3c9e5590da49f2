package models

import (
	"encoding/json"
	"errors"
)

var ErrIncompleteItem = errors.New("order item is missing price or quantity")

// OrderItemPK identifies an order item by the (order, product) pair.
type OrderItemPK struct {
	OrderID   uint `gorm:"primaryKey;autoIncrement:false;column:order_id"`
	ProductID uint `gorm:"primaryKey;autoIncrement:false;column:product_id"`
}

func (k OrderItemPK) Equal(other OrderItemPK) bool {
	return k.OrderID == other.OrderID && k.ProductID == other.ProductID
}

// OrderItem is the association between an order and a product, carrying the
// quantity and the price at the time of sale. Quantity and Price are nil
// until set.
type OrderItem struct {
	OrderItemPK

	Quantity *int
	Price    *float64

	Order   *Order   `gorm:"foreignKey:OrderID"`
	Product *Product `gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string { return "tb_order_item" }

func NewOrderItem(order *Order, product *Product, quantity int, price float64) OrderItem {
	item := OrderItem{Product: product}
	item.SetQuantity(quantity)
	item.SetPrice(price)
	if order != nil {
		item.OrderID = order.ID
	}
	if product != nil {
		item.ProductID = product.ID
	}
	return item
}

func (i *OrderItem) SetQuantity(q int) { i.Quantity = &q }

func (i *OrderItem) SetPrice(p float64) { i.Price = &p }

func (i OrderItem) Key() OrderItemPK {
	return i.OrderItemPK
}

// Equal compares items by their (order, product) key only.
func (i OrderItem) Equal(other OrderItem) bool {
	return i.Key().Equal(other.Key())
}

func (i OrderItem) Subtotal() (float64, error) {
	if i.Price == nil || i.Quantity == nil {
		return 0, ErrIncompleteItem
	}
	return *i.Price * float64(*i.Quantity), nil
}

type orderItemJSON struct {
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
	Product  *Product `json:"product"`
	SubTotal *float64 `json:"subTotal,omitempty"`
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	out := orderItemJSON{
		Quantity: i.Quantity,
		Price:    i.Price,
		Product:  i.Product,
	}
	if sub, err := i.Subtotal(); err == nil {
		out.SubTotal = &sub
	}
	return json.Marshal(out)
}

func (i *OrderItem) UnmarshalJSON(data []byte) error {
	var in orderItemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	i.Quantity = in.Quantity
	i.Price = in.Price
	i.Product = in.Product
	if in.Product != nil {
		i.ProductID = in.Product.ID
	}
	return nil
}
