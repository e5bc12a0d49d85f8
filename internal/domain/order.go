package domain

// Resolved postal address returned by the address resolution service.
type Address struct {
	Address    string
	City       string
	State      string
	PostalCode string
}

// A scheduled stop: a resolved address plus caller-supplied scheduling fields.
// Constructed once per request; no independent lifecycle.
type Location struct {
	Address
	Date string
	Time string
}

// Contact details for the party responsible for an order.
// Name, Email and Phone are required by order extraction.
type Contact struct {
	Name  string
	Email string
	Phone string
}

type Cargo struct {
	Description string
	WeightLbs   float64
}

// A single freight order: where to pick up, where to deliver,
// who to talk to, and what is being moved.
type Order struct {
	Pickup   Location
	Delivery Location
	Contact  Contact
	Cargo    Cargo
}
