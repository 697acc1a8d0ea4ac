package session

// DetailPresenter renders the full description of a table row.
type DetailPresenter struct {
	table *TableModel
}

// Present returns the detail block of the item at row.
func (p *DetailPresenter) Present(row int) (string, error) {
	item, err := p.table.item(row)
	if err != nil {
		return "", err
	}
	return item.Detail, nil
}
