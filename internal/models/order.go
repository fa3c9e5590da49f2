package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Order keeps its status as the raw code; use Status and SetStatus to work
// with OrderStatus values.
type Order struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	Moment      time.Time
	OrderStatus int  `gorm:"column:order_status"`
	ClientID    uint `gorm:"column:client_id;index"`

	Client  *User       `gorm:"foreignKey:ClientID"`
	Items   []OrderItem `gorm:"foreignKey:OrderID"`
	Payment *Payment    `gorm:"foreignKey:ID"`
}

func (Order) TableName() string { return "tb_order" }

func NewOrder(moment time.Time, status OrderStatus, client *User) *Order {
	o := &Order{Moment: moment.UTC(), Client: client}
	o.SetStatus(&status)
	if client != nil {
		o.ClientID = client.ID
	}
	return o
}

func (o Order) Equal(other Order) bool {
	return o.ID == other.ID
}

func (o Order) Status() (OrderStatus, error) {
	return OrderStatusFromCode(o.OrderStatus)
}

// SetStatus stores the code of s. A nil status leaves the stored code as it
// was.
func (o *Order) SetStatus(s *OrderStatus) {
	if s != nil {
		o.OrderStatus = s.Code()
	}
}

// SetPayment attaches p to the order under the order's own ID.
func (o *Order) SetPayment(p *Payment) {
	if p != nil {
		p.ID = o.ID
	}
	o.Payment = p
}

func (o Order) Total() (float64, error) {
	sum := decimal.Zero
	for _, item := range o.Items {
		sub, err := item.Subtotal()
		if err != nil {
			return 0, err
		}
		sum = sum.Add(decimal.NewFromFloat(sub))
	}
	return sum.InexactFloat64(), nil
}

type orderJSON struct {
	ID          uint         `json:"id"`
	Moment      *string      `json:"moment"`
	OrderStatus *OrderStatus `json:"orderStatus"`
	Client      *User        `json:"client"`
	Items       []OrderItem  `json:"items"`
	Payment     *Payment     `json:"payment"`
	Total       *float64     `json:"total"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	out := orderJSON{
		ID:      o.ID,
		Moment:  formatMoment(o.Moment),
		Client:  o.Client,
		Items:   o.Items,
		Payment: o.Payment,
	}
	if out.Items == nil {
		out.Items = []OrderItem{}
	}
	if o.OrderStatus != 0 {
		status, err := o.Status()
		if err != nil {
			return nil, err
		}
		out.OrderStatus = &status
	}
	if total, err := o.Total(); err == nil {
		out.Total = &total
	}
	return json.Marshal(out)
}

// UnmarshalJSON ignores the serialized total; it is always recomputed from
// the items. Items and payment are re-keyed to the decoded order id.
func (o *Order) UnmarshalJSON(data []byte) error {
	var in orderJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	moment, err := parseMoment(in.Moment)
	if err != nil {
		return err
	}

	*o = Order{
		ID:      in.ID,
		Moment:  moment,
		Client:  in.Client,
		Items:   in.Items,
	}
	o.SetStatus(in.OrderStatus)
	o.SetPayment(in.Payment)
	if in.Client != nil {
		o.ClientID = in.Client.ID
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	return nil
}
