package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("tickets")

		collection.Fields.Add(
			&core.TextField{Name: "ticketId", Required: true},
			&core.TextField{Name: "eventId", Required: true},
			&core.TextField{Name: "fullName", Required: true},
			&core.EmailField{Name: "email", Required: true},
			// not unique: repeated generate-ticket calls for the same
			// payment reference create duplicate tickets
			&core.TextField{Name: "paymentReference", Required: true},
			&core.TextField{Name: "eventTitle"},
			&core.TextField{Name: "eventDate"},
			&core.TextField{Name: "eventLocation"},
			&core.TextField{Name: "issuedAt"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_tickets_ticketId", true, "ticketId", "")
		collection.AddIndex("idx_tickets_paymentReference", false, "paymentReference", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
