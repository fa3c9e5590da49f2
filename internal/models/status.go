package models

import (
	"errors"
	"fmt"
)

var ErrInvalidStatusCode = errors.New("invalid order status code")

// OrderStatus is the lifecycle state of an order. It is stored by its code.
type OrderStatus int

const (
	WaitingPayment OrderStatus = 1
	Paid           OrderStatus = 2
	Shipped        OrderStatus = 3
	Delivered      OrderStatus = 4
	Canceled       OrderStatus = 5
)

var statusNames = map[OrderStatus]string{
	WaitingPayment: "WAITING_PAYMENT",
	Paid:           "PAID",
	Shipped:        "SHIPPED",
	Delivered:      "DELIVERED",
	Canceled:       "CANCELED",
}

func OrderStatusFromCode(code int) (OrderStatus, error) {
	s := OrderStatus(code)
	if _, ok := statusNames[s]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStatusCode, code)
	}
	return s, nil
}

func (s OrderStatus) Code() int {
	return int(s)
}

func (s OrderStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatusCode, int(s))
	}
	return []byte(name), nil
}

func (s *OrderStatus) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatusCode, string(text))
}
