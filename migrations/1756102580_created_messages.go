package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("messages")

		collection.Fields.Add(
			&core.TextField{Name: "text", Required: true},
			&core.TextField{Name: "sender", Required: true},
			&core.EmailField{Name: "email"},
			&core.TextField{Name: "roomId"},
			&core.TextField{Name: "source"},
			&core.BoolField{Name: "read"},
			&core.BoolField{Name: "replied"},
			&core.TextField{Name: "replyText"},
			&core.DateField{Name: "repliedAt"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("messages")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
