package bench

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// CompressionRow is one line of the compression summary.
type CompressionRow struct {
	Dataset string `csv:"dataset"`
	// OriginalSize and CompressedSize are -1 when the file is missing.
	OriginalSize   int64 `csv:"original_file_size"`
	CompressedSize int64 `csv:"compressed_file_size"`
	Record
}

// QueryRow is one line of the query summary.
type QueryRow struct {
	Approach    string `csv:"algorithm"`
	Dataset     string `csv:"dataset"`
	QueryLength int    `csv:"type"`
	// QueryCount is -1 when the query file is missing.
	QueryCount int    `csv:"query_count"`
	Successful string `csv:"successful"`
	Record
}

func newTableWriter(w io.Writer) *gocsv.SafeCSVWriter {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = '\t'
	return gocsv.NewSafeCSVWriter(csvWriter)
}

// WriteCompressionTable writes a tab-separated table with a header line
// followed by rows, in order.
func WriteCompressionTable(w io.Writer, rows []CompressionRow) error {
	return gocsv.MarshalCSV(&rows, newTableWriter(w))
}

// WriteQueryTable writes a tab-separated table with a header line followed by
// rows, in order.
func WriteQueryTable(w io.Writer, rows []QueryRow) error {
	return gocsv.MarshalCSV(&rows, newTableWriter(w))
}

func writeTableFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
