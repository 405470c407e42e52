package core

import (
	"context"

	"portal-coordinadores/internal/airtable"
)

// fakeStore implements airtable.API with per-method functions. Methods a
// test does not script panic so accidental calls surface immediately.
type fakeStore struct {
	list   func(table string, opts airtable.ListOptions) (airtable.Page, error)
	get    func(table, id string) (*airtable.Record, error)
	create func(table string, fields map[string]any) (*airtable.Record, error)
	update func(table, id string, fields map[string]any) (*airtable.Record, error)
}

var _ airtable.API = (*fakeStore)(nil)

func (f *fakeStore) List(_ context.Context, table string, opts airtable.ListOptions) (airtable.Page, error) {
	if f.list == nil {
		panic("fakeStore: unexpected List call")
	}
	return f.list(table, opts)
}

func (f *fakeStore) ListAll(ctx context.Context, table string, opts airtable.ListOptions) ([]airtable.Record, error) {
	var all []airtable.Record
	for {
		page, err := f.List(ctx, table, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Records...)
		if page.Offset == "" {
			return all, nil
		}
		opts.Offset = page.Offset
	}
}

func (f *fakeStore) Get(_ context.Context, table, id string) (*airtable.Record, error) {
	if f.get == nil {
		panic("fakeStore: unexpected Get call")
	}
	return f.get(table, id)
}

func (f *fakeStore) Create(_ context.Context, table string, fields map[string]any) (*airtable.Record, error) {
	if f.create == nil {
		panic("fakeStore: unexpected Create call")
	}
	return f.create(table, fields)
}

func (f *fakeStore) Update(_ context.Context, table, id string, fields map[string]any) (*airtable.Record, error) {
	if f.update == nil {
		panic("fakeStore: unexpected Update call")
	}
	return f.update(table, id, fields)
}
