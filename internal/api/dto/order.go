package dto

import "truck-route-service/internal/domain"

type StopRequest struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CargoRequest struct {
	Description string  `json:"description"`
	WeightLbs   float64 `json:"weight_lbs"`
}

type OrderRequest struct {
	Pickup   StopRequest    `json:"pickup"`
	Delivery StopRequest    `json:"delivery"`
	Contact  ContactRequest `json:"contact"`
	Cargo    CargoRequest   `json:"cargo"`
}

// ToDomain maps the wire order onto the domain order. The free-text location
// lands in the address field; resolution fills in the rest.
func (r OrderRequest) ToDomain() domain.Order {
	return domain.Order{
		Pickup: domain.Location{
			Address: domain.Address{Address: r.Pickup.Location},
			Date:    r.Pickup.Date,
			Time:    r.Pickup.Time,
		},
		Delivery: domain.Location{
			Address: domain.Address{Address: r.Delivery.Location},
			Date:    r.Delivery.Date,
			Time:    r.Delivery.Time,
		},
		Contact: domain.Contact{
			Name:  r.Contact.Name,
			Email: r.Contact.Email,
			Phone: r.Contact.Phone,
		},
		Cargo: domain.Cargo{
			Description: r.Cargo.Description,
			WeightLbs:   r.Cargo.WeightLbs,
		},
	}
}

type LocationResponse struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

type OrderResponse struct {
	Pickup   LocationResponse `json:"pickup"`
	Delivery LocationResponse `json:"delivery"`
	Contact  ContactRequest   `json:"contact"`
	Cargo    CargoRequest     `json:"cargo"`
}

func OrderResponseFromDomain(o domain.Order) OrderResponse {
	return OrderResponse{
		Pickup:   locationResponse(o.Pickup),
		Delivery: locationResponse(o.Delivery),
		Contact:  ContactRequest(o.Contact),
		Cargo:    CargoRequest(o.Cargo),
	}
}

// ToDomain rebuilds a domain order from an echoed order response.
func (r OrderResponse) ToDomain() domain.Order {
	return domain.Order{
		Pickup:   r.Pickup.toDomain(),
		Delivery: r.Delivery.toDomain(),
		Contact:  domain.Contact(r.Contact),
		Cargo:    domain.Cargo(r.Cargo),
	}
}

func (l LocationResponse) toDomain() domain.Location {
	return domain.Location{
		Address: domain.Address{
			Address:    l.Address,
			City:       l.City,
			State:      l.State,
			PostalCode: l.PostalCode,
		},
		Date: l.Date,
		Time: l.Time,
	}
}

func locationResponse(l domain.Location) LocationResponse {
	return LocationResponse{
		Address:    l.Address.Address,
		City:       l.City,
		State:      l.State,
		PostalCode: l.PostalCode,
		Date:       l.Date,
		Time:       l.Time,
	}
}
