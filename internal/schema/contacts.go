package schema

import "github.com/JonMunkholm/SheetImport/internal/core"

// ContactFields defines the target shape for CRM contact imports.
var ContactFields = core.Fields{
	{Key: "name", Label: "Name", Required: true, Type: core.FieldText},
	{Key: "email", Label: "Email", Required: true, Type: core.FieldText},
	{Key: "phone", Label: "Phone", Type: core.FieldText},
	{Key: "company", Label: "Company", Type: core.FieldText},
	{Key: "subscribed", Label: "Subscribed", Type: core.FieldCheckbox},
	{
		Key:   "lead_source",
		Label: "Lead Source",
		Type:  core.FieldSelect,
		Options: []core.SelectOption{
			{Label: "Website", Value: "website"},
			{Label: "Referral", Value: "referral"},
			{Label: "Event", Value: "event"},
			{Label: "Cold Outreach", Value: "outreach"},
		},
	},
}

func init() {
	core.Register(core.Template{
		Key:    "contacts",
		Group:  "CRM",
		Label:  "Contacts",
		Fields: ContactFields,
	})
}
