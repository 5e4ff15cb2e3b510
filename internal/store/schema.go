package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	requestEventsTable = "request_events"
	defectEventsTable  = "defect_events"
)

var (
	requestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "endpoint", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "status", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	requestEventsSchema = &schema.Table{
		Name:       requestEventsTable,
		Columns:    requestEventsColumns,
		PrimaryKey: []*schema.Column{requestEventsColumns[0]},
	}

	defectEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "source", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "question_type", Type: field.TypeString, Default: ""},
		{Name: "detail", Type: field.TypeString},
	}
	defectEventsSchema = &schema.Table{
		Name:       defectEventsTable,
		Columns:    defectEventsColumns,
		PrimaryKey: []*schema.Column{defectEventsColumns[0]},
	}

	tables = []*schema.Table{requestEventsSchema, defectEventsSchema}
)

// migrate creates or extends the event tables. It never drops columns.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
