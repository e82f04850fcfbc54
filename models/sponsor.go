package models

import "time"

const (
	InquiryStatusPending   = "pending"
	InquiryStatusReviewing = "reviewing"
	InquiryStatusApproved  = "approved"
	InquiryStatusRejected  = "rejected"
)

var ValidInquiryStatuses = []string{
	InquiryStatusPending,
	InquiryStatusReviewing,
	InquiryStatusApproved,
	InquiryStatusRejected,
}

func IsValidInquiryStatus(status string) bool {
	for _, s := range ValidInquiryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type SponsorInquiry struct {
	ID            string    `json:"id"`
	CompanyName   string    `json:"companyName"`
	ContactPerson string    `json:"contactPerson"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Budget        string    `json:"budget,omitempty"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	Created       time.Time `json:"createdAt"`
	Updated       time.Time `json:"updatedAt"`
}
