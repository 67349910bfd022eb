package models

import (
	"strings"
	"time"
)

const DateLayout = time.DateOnly

// Date is a calendar day serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(DateLayout, strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Invoice bills an order. DateIssued is always set by the server.
type Invoice struct {
	ID         int     `json:"id"`
	OrderID    int     `json:"order_id"`
	Amount     float64 `json:"amount"`
	DateIssued Date    `json:"date_issued"`
}
