package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// readParquet reads every row group of a flat parquet file.
// Repeated leaf values are joined with ", ".
func readParquet(path string) (*table, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	t := &table{}
	for _, col := range pf.Schema().Columns() {
		t.header = append(t.header, strings.Join(col, "."))
	}

	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func readRowGroup(rg parquet.RowGroup, t *table) error {
	rows := parquet.NewRowGroupReader(rg)
	buf := make([]parquet.Row, 256)

	for {
		n, readErr := rows.ReadRows(buf)
		for i := 0; i < n; i++ {
			t.rows = append(t.rows, rowCells(buf[i], len(t.header)))
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: read rows: %v", ErrMalformed, readErr)
		}
		if n == 0 {
			return nil
		}
	}
}

func rowCells(row parquet.Row, width int) []string {
	cells := make([]string, width)
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= width || v.IsNull() {
			continue
		}
		if cells[col] != "" {
			cells[col] += ", "
		}
		cells[col] += v.String()
	}
	return cells
}
