package reports

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// WriteCSV: 既定は BOM 付き UTF-8（表計算ソフトが文字コードを判別できるように）
func WriteCSV(w io.Writer, t *Table, bom bool) error {
	var enc *encoding.Encoder
	if bom {
		enc = unicode.UTF8BOM.NewEncoder()
	} else {
		enc = unicode.UTF8.NewEncoder()
	}
	tw := transform.NewWriter(w, enc)
	cw := csv.NewWriter(tw)

	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records); err != nil {
		return err
	}
	return tw.Close()
}
