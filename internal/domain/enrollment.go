package domain

import "time"

type Enrollment struct {
	ID        int64
	UserID    int64
	Name      string
	CPF       string
	Phone     string
	Address   *Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Address struct {
	ID            int64
	CEP           string
	Street        string
	City          string
	State         string
	Number        string
	Neighborhood  string
	AddressDetail *string
}

type TicketStatus string

const (
	TicketReserved TicketStatus = "RESERVED"
	TicketPaid     TicketStatus = "PAID"
)

type Ticket struct {
	ID           int64
	EnrollmentID int64
	Status       TicketStatus
	Type         TicketType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type TicketType struct {
	ID            int64
	Name          string
	Price         int
	IsRemote      bool
	IncludesHotel bool
}

type Session struct {
	ID     int64
	UserID int64
	Token  string
}
