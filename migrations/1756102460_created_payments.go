package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("payments")

		collection.Fields.Add(
			&core.TextField{Name: "reference", Required: true},
			&core.TextField{Name: "status"},
			&core.NumberField{Name: "amount", OnlyInt: true},
			&core.TextField{Name: "currency"},
			&core.TextField{Name: "channel"},
			&core.EmailField{Name: "email"},
			&core.TextField{Name: "paidAt"},
			&core.TextField{Name: "raw"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_payments_reference", false, "reference", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("payments")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
