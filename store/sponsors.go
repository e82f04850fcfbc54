package store

import (
	"context"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/internal/status"
	"wknd-backend/models"
)

// SaveInquiry persists a new sponsorship inquiry with status pending.
func (s *Store) SaveInquiry(ctx context.Context, inq *models.SponsorInquiry) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionInquiries)
	if err != nil {
		return &status.PersistenceError{Op: "saveInquiry", Err: err}
	}

	record := core.NewRecord(collection)
	record.Set("companyName", inq.CompanyName)
	record.Set("contactPerson", inq.ContactPerson)
	record.Set("email", inq.Email)
	record.Set("phone", inq.Phone)
	record.Set("budget", inq.Budget)
	record.Set("message", inq.Message)
	record.Set("status", inq.Status)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return &status.PersistenceError{Op: "saveInquiry", Err: err}
	}

	inq.ID = record.Id
	inq.Created = record.GetDateTime("created").Time()
	inq.Updated = record.GetDateTime("updated").Time()
	return nil
}

// ListInquiries returns all sponsorship inquiries, newest first.
func (s *Store) ListInquiries(ctx context.Context) ([]models.SponsorInquiry, error) {
	records, err := s.app.FindRecordsByFilter(CollectionInquiries, "id != ''", "-created", 0, 0)
	if err != nil {
		return nil, &status.PersistenceError{Op: "listInquiries", Err: err}
	}
	return inquiriesFromRecords(records), nil
}

// FindInquiry looks an inquiry up by id.
func (s *Store) FindInquiry(ctx context.Context, id string) (*models.SponsorInquiry, error) {
	record, err := s.app.FindRecordById(CollectionInquiries, id)
	if err != nil {
		return nil, &status.NotFoundError{Resource: "inquiry", Key: id}
	}
	return inquiryFromRecord(record), nil
}

// UpdateInquiryStatus moves an inquiry through the review workflow.
func (s *Store) UpdateInquiryStatus(ctx context.Context, id, newStatus string) (*models.SponsorInquiry, error) {
	record, err := s.app.FindRecordById(CollectionInquiries, id)
	if err != nil {
		return nil, &status.NotFoundError{Resource: "inquiry", Key: id}
	}

	record.Set("status", newStatus)
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return nil, &status.PersistenceError{Op: "updateInquiryStatus", Err: err}
	}

	return inquiryFromRecord(record), nil
}

// ListInquiriesByStatus filters inquiries by workflow status.
func (s *Store) ListInquiriesByStatus(ctx context.Context, inqStatus string) ([]models.SponsorInquiry, error) {
	records, err := s.app.FindRecordsByFilter(
		CollectionInquiries,
		"status = {:status}",
		"-created",
		0,
		0,
		dbx.Params{"status": inqStatus},
	)
	if err != nil {
		return nil, &status.PersistenceError{Op: "listInquiriesByStatus", Err: err}
	}
	return inquiriesFromRecords(records), nil
}

func inquiriesFromRecords(records []*core.Record) []models.SponsorInquiry {
	inquiries := make([]models.SponsorInquiry, 0, len(records))
	for _, record := range records {
		inquiries = append(inquiries, *inquiryFromRecord(record))
	}
	return inquiries
}

func inquiryFromRecord(record *core.Record) *models.SponsorInquiry {
	return &models.SponsorInquiry{
		ID:            record.Id,
		CompanyName:   record.GetString("companyName"),
		ContactPerson: record.GetString("contactPerson"),
		Email:         record.GetString("email"),
		Phone:         record.GetString("phone"),
		Budget:        record.GetString("budget"),
		Message:       record.GetString("message"),
		Status:        record.GetString("status"),
		Created:       record.GetDateTime("created").Time(),
		Updated:       record.GetDateTime("updated").Time(),
	}
}
