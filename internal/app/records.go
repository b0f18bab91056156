package app

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/luxedir/pkg/listing"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Records returns a copy of every record in directory order.
func (d *Directory) Records() []types.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneRecords(d.state.Records)
}

// Record returns the first record with the given ID.
func (d *Directory) Record(id string) (types.Record, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := recordIndex(d.state.Records, id)
	if i < 0 {
		return types.Record{}, fmt.Errorf("record %s: %w", id, types.ErrRecordNotFound)
	}
	return d.state.Records[i].Clone(), nil
}

// Browse computes the public listing for q over every record.
func (d *Directory) Browse(q listing.Query) listing.Result {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return listing.Apply(d.state.Schema, d.state.Records, q)
}

// Facets returns the filter groups of the public listing.
func (d *Directory) Facets() []listing.Facet {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return listing.ExtractFacets(d.state.Schema, d.state.Records)
}

// FormPages returns the entry form layout of the current schema.
func (d *Directory) FormPages() []listing.Page {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return listing.BuildPages(d.state.Schema)
}

// ManagedRecords returns the records the signed-in user manages: every
// record for admins, their own for owners, none otherwise.
func (d *Directory) ManagedRecords() []types.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user := d.currentUser()
	if user == nil {
		return []types.Record{}
	}
	out := []types.Record{}
	for _, r := range d.state.Records {
		switch {
		case user.Role == types.RoleAdmin:
		case user.Role == types.RoleOwner && r.OwnerID == user.ID:
		default:
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

// buildRecord applies in to base and checks the result against the schema.
func (d *Directory) buildRecord(base types.Record, in listing.RecordInput) (types.Record, error) {
	r := base
	r.Name = strings.TrimSpace(in.Name)
	r.Address = strings.TrimSpace(in.Address)
	r.Image = strings.TrimSpace(in.Image)
	r.Category = in.Category
	if r.Category == "" {
		r.Category = types.CategoryBoutique
	}
	if err := r.Validate(); err != nil {
		return types.Record{}, err
	}
	data, err := types.Conform(d.state.Schema, in.Data)
	if err != nil {
		return types.Record{}, err
	}
	// Keys no schema field claims are not part of the entry form; they
	// survive unless the input names them.
	known := types.IndexFields(d.state.Schema)
	for k, v := range base.Data {
		if _, ok := known[k]; ok {
			continue
		}
		if _, ok := data[k]; !ok {
			data[k] = v
		}
	}
	r.Data = data
	return r, nil
}

// AddRecord creates a record owned by the signed-in user and places it at
// the front of the directory.
func (d *Directory) AddRecord(in listing.RecordInput) (types.Record, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r, err := d.buildRecord(types.Record{ID: d.newID(), OwnerID: d.state.CurrentUserID}, in)
	if err != nil {
		return types.Record{}, fmt.Errorf("adding record: %w", err)
	}

	records := make([]types.Record, 0, len(d.state.Records)+1)
	records = append(records, r)
	d.state.Records = append(records, d.state.Records...)
	d.save(types.PartRecords)
	d.log.Infow("record added", "id", r.ID, "owner", r.OwnerID)
	return r.Clone(), nil
}

// UpdateRecord replaces the attributes and schema values of the record
// with the given ID. ID and owner are kept; schema values are replaced
// wholesale. Duplicates that share the first match's owner are updated too.
func (d *Directory) UpdateRecord(id string, in listing.RecordInput) (types.Record, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	targets := matchRecords(d.state.Records, id)
	if len(targets) == 0 {
		return types.Record{}, fmt.Errorf("updating record %s: %w", id, types.ErrRecordNotFound)
	}

	records := cloneRecords(d.state.Records)
	for _, j := range targets {
		r, err := d.buildRecord(records[j], in)
		if err != nil {
			return types.Record{}, fmt.Errorf("updating record %s: %w", id, err)
		}
		records[j] = r
	}
	d.state.Records = records
	d.save(types.PartRecords)
	return records[targets[0]].Clone(), nil
}

// RequestDeleteRecord describes the confirmation deleting a record needs.
func (d *Directory) RequestDeleteRecord(id string) (Decision, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := recordIndex(d.state.Records, id)
	if i < 0 {
		return Decision{}, fmt.Errorf("record %s: %w", id, types.ErrRecordNotFound)
	}
	return Decision{
		RequiresConfirmation: true,
		Danger:               DangerHigh,
		Title:                "Delete listing",
		Message:              fmt.Sprintf("Are you sure you want to delete %q?", d.state.Records[i].Name),
		ConfirmText:          "Delete",
	}, nil
}

// DeleteRecord removes the record with the given ID along with any
// duplicates that share its owner.
func (d *Directory) DeleteRecord(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	targets := matchRecords(d.state.Records, id)
	if len(targets) == 0 {
		return fmt.Errorf("deleting record %s: %w", id, types.ErrRecordNotFound)
	}
	owner := d.state.Records[targets[0]].OwnerID
	drop := make(map[int]bool, len(targets))
	for _, j := range targets {
		drop[j] = true
	}
	records := make([]types.Record, 0, len(d.state.Records)-len(targets))
	for j, r := range d.state.Records {
		if !drop[j] {
			records = append(records, r)
		}
	}
	d.state.Records = records
	d.save(types.PartRecords)
	d.log.Infow("record deleted", "id", id, "owner", owner, "count", len(targets))
	return nil
}

// ImportRecords places records at the front of the directory in the order
// given. Nothing is deduplicated: an imported ID that already exists yields
// two records. Records without an ID get a new one and records without a
// category become Boutique. Values that fit their field are normalized to
// the field's variant; everything else is taken as it is.
func (d *Directory) ImportRecords(records []types.Record) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	merged := make([]types.Record, 0, len(records)+len(d.state.Records))
	for _, r := range records {
		r = r.Clone()
		if strings.TrimSpace(r.ID) == "" {
			r.ID = d.newID()
		}
		if r.Category == "" {
			r.Category = types.CategoryBoutique
		}
		r.Data = types.Normalize(d.state.Schema, r.Data)
		merged = append(merged, r)
	}
	d.state.Records = append(merged, d.state.Records...)
	d.save(types.PartRecords)
	d.log.Infow("records imported", "count", len(records))
	return len(records)
}

// matchRecords returns the positions of the records a change to id acts
// on: the first record with that ID and the later duplicates owned by the
// same user. Callers check permissions against the first match only.
func matchRecords(records []types.Record, id string) []int {
	first := recordIndex(records, id)
	if first < 0 {
		return nil
	}
	out := []int{first}
	for j := first + 1; j < len(records); j++ {
		if records[j].ID == id && records[j].OwnerID == records[first].OwnerID {
			out = append(out, j)
		}
	}
	return out
}

func recordIndex(records []types.Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
