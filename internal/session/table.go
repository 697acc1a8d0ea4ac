// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"sync"

	"github.com/MKhiriev/go-replica-sync/models"
)

// Row is the displayable value of one table row.
type Row struct {
	Index   int
	Path    string
	Summary string
	Action  models.Action
	Ignored bool
}

// TableModel exposes the session's current item list to the display layer.
//
// The model holds the same *models.ReconItem values the engine produced and
// later reads in ApplySync; it never copies them. The list is replaced only
// as a whole, under the write lock, so readers never see a partial list.
type TableModel struct {
	onToggle func(row int, item *models.ReconItem)

	mu        sync.RWMutex
	items     []*models.ReconItem
	editable  bool
	presenter *DetailPresenter
}

func newTableModel(onToggle func(row int, item *models.ReconItem)) *TableModel {
	if onToggle == nil {
		onToggle = func(int, *models.ReconItem) {}
	}
	t := &TableModel{onToggle: onToggle}
	t.presenter = &DetailPresenter{table: t}
	return t
}

// RowCount returns the length of the installed list.
func (t *TableModel) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// ValueAt returns the displayable value of row.
func (t *TableModel) ValueAt(row int) (Row, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, err := t.itemLocked(row)
	if err != nil {
		return Row{}, err
	}
	return rowOf(item), nil
}

// Rows returns every row from one snapshot of the list.
func (t *TableModel) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]Row, 0, len(t.items))
	for _, item := range t.items {
		rows = append(rows, rowOf(item))
	}
	return rows
}

// ToggleIgnore flips the ignore flag of row. It is the only mutation the
// display layer can make, and it is allowed only while the session is
// reviewing.
func (t *TableModel) ToggleIgnore(row int) error {
	t.mu.Lock()
	item, err := t.itemLocked(row)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	if !t.editable {
		t.mu.Unlock()
		return ErrNotEditable
	}
	item.Ignored = !item.Ignored
	t.mu.Unlock()

	t.onToggle(row, item)
	return nil
}

// Detail returns the full description of row.
func (t *TableModel) Detail(row int) (string, error) {
	return t.presenter.Present(row)
}

// Editable reports whether ToggleIgnore is currently allowed.
func (t *TableModel) Editable() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.editable
}

func (t *TableModel) item(row int) (*models.ReconItem, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.itemLocked(row)
}

func (t *TableModel) itemLocked(row int) (*models.ReconItem, error) {
	if row < 0 || row >= len(t.items) {
		return nil, indexError(row, len(t.items))
	}
	return t.items[row], nil
}

// install replaces the list. Item indexes are reset to their positions.
func (t *TableModel) install(items []*models.ReconItem, editable bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, item := range items {
		item.Index = i
	}
	t.items = items
	t.editable = editable
}

func (t *TableModel) setEditable(editable bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.editable = editable
}

func (t *TableModel) clear() {
	t.install(nil, false)
}

// list returns the installed list itself, not a copy.
func (t *TableModel) list() []*models.ReconItem {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.items
}

func rowOf(item *models.ReconItem) Row {
	return Row{
		Index:   item.Index,
		Path:    item.Path,
		Summary: item.Summary,
		Action:  item.Action,
		Ignored: item.Ignored,
	}
}
