package client

import "time"

// Client is a customer that work and transportation registrations can be
// booked against.
type Client struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
