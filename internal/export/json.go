package export

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/dbsmedya/commentetl/internal/table"
)

// WriteJSON writes the table as an array of objects, one per line, keys in column order.
func WriteJSON(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)
	columns := t.Columns()

	keys := make([][]byte, len(columns))
	for i, c := range columns {
		k, err := json.Marshal(c)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	bw.WriteString("[")
	for i, r := range t.Rows() {
		if i > 0 {
			bw.WriteString(",")
		}
		bw.WriteString("\n{")
		for j, c := range columns {
			if j > 0 {
				bw.WriteString(",")
			}
			v, err := r.Get(c).MarshalJSON()
			if err != nil {
				return err
			}
			bw.Write(keys[j])
			bw.WriteString(":")
			bw.Write(v)
		}
		bw.WriteString("}")
	}
	if t.Len() > 0 {
		bw.WriteString("\n")
	}
	bw.WriteString("]\n")

	return bw.Flush()
}

// WriteJSONFile writes t to path as JSON records, creating parent directories.
func WriteJSONFile(path string, t *table.Table) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(w, t) })
}
