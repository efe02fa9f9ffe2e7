// Package bench collates the per-run benchmark files left behind by the
// benchmark runner into two summary tables, one for compression runs and one
// for query runs.
package bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/acubelab/ppcutils"
	"github.com/jszwec/csvutil"
)

// NA is the value of every field of a record that could not be found.
const NA = "NA"

// RecordFields is the number of fields in a benchmark record.
const RecordFields = 10

// Record is the resource usage of one benchmark run, as measured by the
// benchmark runner. Values are kept verbatim so that they are written out
// exactly as they were read.
type Record struct {
	// Seconds is the wall-clock time in seconds.
	Seconds string `csv:"s"`
	// HMS is the wall-clock time formatted as h:m:s.
	HMS    string `csv:"h:m:s"`
	MaxRSS string `csv:"max_rss"`
	MaxVMS string `csv:"max_vms"`
	MaxUSS string `csv:"max_uss"`
	MaxPSS string `csv:"max_pss"`
	IOIn   string `csv:"io_in"`
	IOOut  string `csv:"io_out"`
	// MeanLoad is the average CPU load of the run.
	MeanLoad string `csv:"mean_load"`
	CPUTime  string `csv:"cpu_time"`
}

var recordHeader []string

func init() {
	header, err := csvutil.Header(Record{}, "csv")
	if err != nil {
		panic(fmt.Errorf("failed to build benchmark record header: %w", err))
	}
	if len(header) != RecordFields {
		panic(fmt.Errorf("benchmark record has %d fields, expected %d", len(header), RecordFields))
	}
	recordHeader = header
}

// RecordHeader returns the column names of a benchmark record.
func RecordHeader() []string {
	header := make([]string, len(recordHeader))
	copy(header, recordHeader)
	return header
}

// NARecord returns a record standing in for a missing benchmark file.
func NARecord() Record {
	return Record{NA, NA, NA, NA, NA, NA, NA, NA, NA, NA}
}

// Fields returns the record's values in column order.
func (r Record) Fields() []string {
	return []string{
		r.Seconds, r.HMS, r.MaxRSS, r.MaxVMS, r.MaxUSS,
		r.MaxPSS, r.IOIn, r.IOOut, r.MeanLoad, r.CPUTime,
	}
}

// RecordFromFields builds a record from exactly [RecordFields] values.
func RecordFromFields(fields []string) (Record, error) {
	if len(fields) != RecordFields {
		return Record{}, ppcutils.ErrMalformedRecord.WithMessage(
			fmt.Sprintf("expected %d fields, got %d", RecordFields, len(fields)))
	}
	return Record{
		fields[0], fields[1], fields[2], fields[3], fields[4],
		fields[5], fields[6], fields[7], fields[8], fields[9],
	}, nil
}

// IsNA reports whether every field of the record is [NA].
func (r Record) IsNA() bool {
	return r == NARecord()
}

// DecodeRecord reads a tab-separated benchmark file: a header line followed by
// one data row. Columns are matched by position; the header's contents are
// ignored.
func DecodeRecord(input io.Reader) (Record, error) {
	csvReader := csv.NewReader(input)
	csvReader.Comma = '\t'
	csvReader.FieldsPerRecord = -1

	if _, err := csvReader.Read(); err != nil {
		return NARecord(), ppcutils.ErrMalformedRecord.WithMessage("missing header").Wrap(err)
	}

	decoder, err := csvutil.NewDecoder(csvReader, recordHeader...)
	if err != nil {
		return NARecord(), ppcutils.ErrMalformedRecord.Wrap(err)
	}

	var record Record
	if err = decoder.Decode(&record); errors.Is(err, io.EOF) {
		return NARecord(), ppcutils.ErrMalformedRecord.WithMessage("missing data row")
	} else if err != nil {
		return NARecord(), ppcutils.ErrMalformedRecord.Wrap(err)
	}
	return record, nil
}

// LoadRecord reads the benchmark file at path. A missing file is not an error:
// it yields [NARecord] and found is false.
func LoadRecord(path string) (record Record, found bool, err error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NARecord(), false, nil
	} else if err != nil {
		return NARecord(), false, err
	}
	defer file.Close()

	record, err = DecodeRecord(file)
	if err != nil {
		return NARecord(), true, fmt.Errorf("%s: %w", path, err)
	}
	return record, true, nil
}
