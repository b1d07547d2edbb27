package edgar

// assembleGrid aligns extracted rows into the final label-by-date grid.
// Duplicate labels are removed with the first occurrence kept; filings
// occasionally render the same line item in more than one table fragment.
// A grid with no data rows or no date columns is reported as
// ErrEmptyStatement so callers can log and skip instead of aborting a batch.
func assembleGrid(ext *extractedStatement) (*StatementGrid, error) {
	if len(ext.Labels) == 0 || len(ext.Dates) == 0 {
		return nil, ErrEmptyStatement
	}

	grid := &StatementGrid{Dates: ext.Dates}
	seen := make(map[string]struct{}, len(ext.Labels))
	for i, label := range ext.Labels {
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		grid.Labels = append(grid.Labels, label)
		grid.Cells = append(grid.Cells, ext.Rows[i])
	}
	return grid, nil
}
