package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// readJSON reads an array of flat objects. The header is the union of keys,
// each object contributing its unseen keys in sorted order.
func readJSON(path string) (*table, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var objects []map[string]interface{}
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	t := &table{}
	columns := make(map[string]int)
	for _, obj := range objects {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := columns[k]; !ok {
				columns[k] = len(t.header)
				t.header = append(t.header, k)
			}
		}
	}

	for _, obj := range objects {
		row := make([]string, len(t.header))
		for k, v := range obj {
			cell, err := jsonCell(v)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q: %v", ErrMalformed, k, err)
			}
			row[columns[k]] = cell
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}

func jsonCell(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}
