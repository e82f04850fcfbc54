package store

import (
	"context"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/internal/status"
	"wknd-backend/models"
)

// CreateUser persists a new account. Emails are stored lowercased and must
// be unique.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionUsers)
	if err != nil {
		return &status.PersistenceError{Op: "createUser", Err: err}
	}

	record := core.NewRecord(collection)
	record.Set("email", strings.ToLower(u.Email))
	record.Set("firstName", u.FirstName)
	record.Set("lastName", u.LastName)
	record.Set("passwordHash", u.PasswordHash)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return &status.PersistenceError{Op: "createUser", Err: err}
	}

	u.ID = record.Id
	u.Email = strings.ToLower(u.Email)
	return nil
}

// FindUserByEmail looks an account up by its lowercased email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	record, err := s.app.FindFirstRecordByFilter(
		CollectionUsers,
		"email = {:email}",
		dbx.Params{"email": strings.ToLower(email)},
	)
	if err != nil {
		return nil, &status.NotFoundError{Resource: "user", Key: email}
	}
	return userFromRecord(record), nil
}

// FindUserByID looks an account up by record id.
func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	record, err := s.app.FindRecordById(CollectionUsers, id)
	if err != nil {
		return nil, &status.NotFoundError{Resource: "user", Key: id}
	}
	return userFromRecord(record), nil
}

// UpdateUserProfile updates the mutable profile fields.
func (s *Store) UpdateUserProfile(ctx context.Context, id, firstName, lastName string) error {
	record, err := s.app.FindRecordById(CollectionUsers, id)
	if err != nil {
		return &status.NotFoundError{Resource: "user", Key: id}
	}

	record.Set("firstName", firstName)
	record.Set("lastName", lastName)
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return &status.PersistenceError{Op: "updateUserProfile", Err: err}
	}

	return nil
}

func userFromRecord(record *core.Record) *models.User {
	return &models.User{
		ID:           record.Id,
		Email:        record.GetString("email"),
		FirstName:    record.GetString("firstName"),
		LastName:     record.GetString("lastName"),
		PasswordHash: record.GetString("passwordHash"),
		Created:      record.GetDateTime("created").Time(),
		Updated:      record.GetDateTime("updated").Time(),
	}
}
