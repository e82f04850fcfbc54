package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("sponsor_inquiries")

		collection.Fields.Add(
			&core.TextField{Name: "companyName", Required: true},
			&core.TextField{Name: "contactPerson", Required: true},
			&core.EmailField{Name: "email", Required: true},
			&core.TextField{Name: "phone"},
			&core.TextField{Name: "budget"},
			&core.TextField{Name: "message", Required: true},
			&core.SelectField{Name: "status", Values: []string{"pending", "reviewing", "approved", "rejected"}, MaxSelect: 1},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("sponsor_inquiries")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
