package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("app_users")

		collection.Fields.Add(
			&core.EmailField{Name: "email", Required: true},
			&core.TextField{Name: "firstName", Required: true},
			&core.TextField{Name: "lastName", Required: true},
			&core.TextField{Name: "passwordHash", Required: true, Hidden: true},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_app_users_email", true, "email", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("app_users")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
