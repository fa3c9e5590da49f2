package models

import (
	"encoding/json"
	"time"
)

// Payment shares its ID with the order it pays for.
type Payment struct {
	ID     uint `gorm:"primaryKey;autoIncrement:false"`
	Moment time.Time
}

func (Payment) TableName() string { return "tb_payment" }

func (p Payment) Equal(other Payment) bool {
	return p.ID == other.ID
}

type paymentJSON struct {
	ID     uint    `json:"id"`
	Moment *string `json:"moment"`
}

func (p Payment) MarshalJSON() ([]byte, error) {
	return json.Marshal(paymentJSON{ID: p.ID, Moment: formatMoment(p.Moment)})
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	var in paymentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	moment, err := parseMoment(in.Moment)
	if err != nil {
		return err
	}
	p.ID = in.ID
	p.Moment = moment
	return nil
}
