package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("bookings")

		collection.Fields.Add(
			&core.TextField{Name: "reference", Required: true},
			&core.TextField{Name: "eventId", Required: true},
			&core.EmailField{Name: "email", Required: true},
			&core.TextField{Name: "fullName", Required: true},
			&core.TextField{Name: "phone"},
			&core.NumberField{Name: "amount", OnlyInt: true},
			&core.SelectField{Name: "status", Values: []string{"pending", "completed"}, MaxSelect: 1},
			&core.SelectField{Name: "paymentStatus", Values: []string{"pending", "completed"}, MaxSelect: 1},
			&core.TextField{Name: "paymentData"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_bookings_reference", true, "reference", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("bookings")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
