package models

// Ticket is the payload encoded into the QR code and persisted once per
// successful generate-ticket call. There is no uniqueness guard against
// duplicate issuance for the same payment reference.
type Ticket struct {
	TicketID         string `json:"ticketId"`
	EventID          string `json:"eventId"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	PaymentReference string `json:"paymentReference"`
	EventTitle       string `json:"eventTitle"`
	EventDate        string `json:"eventDate"`
	EventLocation    string `json:"eventLocation"`
	IssuedAt         string `json:"issuedAt"`
}
