package app

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Schema returns a copy of the field schema.
func (d *Directory) Schema() []types.Field {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneFields(d.state.Schema)
}

// UpdateSchema validates fields and replaces the schema with them. Records
// are not migrated: values under removed field IDs stay on the records as
// orphans.
func (d *Directory) UpdateSchema(fields []types.Field) error {
	if err := types.ValidateSchema(fields); err != nil {
		return fmt.Errorf("updating schema: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Schema = cloneFields(fields)
	d.save(types.PartSchema)
	d.log.Infow("schema updated", "fields", len(fields))
	return nil
}

// AddField appends a new text field named name with the schema builder
// defaults and returns it.
func (d *Directory) AddField(name string) (types.Field, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	known := types.IndexFields(d.state.Schema)
	now := d.now()
	f := types.NewField(name, now)
	for {
		if _, taken := known[f.ID]; !taken {
			break
		}
		now = now.Add(time.Millisecond)
		f = types.NewField(name, now)
	}

	schema := append(cloneFields(d.state.Schema), f)
	if err := types.ValidateSchema(schema); err != nil {
		return types.Field{}, fmt.Errorf("adding field: %w", err)
	}
	d.state.Schema = schema
	d.save(types.PartSchema)
	return f.Clone(), nil
}

// RemoveField drops the field with the given ID from the schema.
func (d *Directory) RemoveField(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := fieldIndex(d.state.Schema, id)
	if i < 0 {
		return fmt.Errorf("removing field %s: %w", id, types.ErrFieldNotFound)
	}
	schema := cloneFields(d.state.Schema)
	d.state.Schema = append(schema[:i], schema[i+1:]...)
	d.save(types.PartSchema)
	return nil
}

// MoveField shifts the field with the given ID by delta positions, clamped
// to the ends of the schema. Field order drives facet, page and group order.
func (d *Directory) MoveField(id string, delta int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := fieldIndex(d.state.Schema, id)
	if i < 0 {
		return fmt.Errorf("moving field %s: %w", id, types.ErrFieldNotFound)
	}
	j := min(max(i+delta, 0), len(d.state.Schema)-1)
	if i == j {
		return nil
	}

	schema := cloneFields(d.state.Schema)
	f := schema[i]
	schema = append(schema[:i], schema[i+1:]...)
	schema = append(schema[:j], append([]types.Field{f}, schema[j:]...)...)
	d.state.Schema = schema
	d.save(types.PartSchema)
	return nil
}

// RequestRemoveField describes the confirmation removing a field needs.
func (d *Directory) RequestRemoveField(id string) (Decision, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := fieldIndex(d.state.Schema, id)
	if i < 0 {
		return Decision{}, fmt.Errorf("field %s: %w", id, types.ErrFieldNotFound)
	}
	return Decision{
		RequiresConfirmation: true,
		Danger:               DangerWarning,
		Title:                "Remove field",
		Message: fmt.Sprintf("Remove %q from the schema? Existing values stay on records but are no longer shown.",
			d.state.Schema[i].Name),
		ConfirmText: "Remove",
	}, nil
}

func fieldIndex(schema []types.Field, id string) int {
	for i, f := range schema {
		if f.ID == id {
			return i
		}
	}
	return -1
}
