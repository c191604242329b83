package reservation

import "errors"

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Times(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

// SessionID identifies an anonymous checkout session.
type SessionID struct {
	value string
}

func NewSessionID(value string) SessionID {
	return SessionID{value: value}
}

func (s SessionID) String() string {
	return s.value
}

func (s SessionID) IsEmpty() bool {
	return s.value == ""
}
