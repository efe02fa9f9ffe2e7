package bench

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/acubelab/ppcutils/logging"
	"github.com/docker/go-units"
	"go.uber.org/zap"
)

// FailedIndicator is the success flag of a run whose indicator file is missing.
const FailedIndicator = "0"

// Collector builds summary rows from the files of a benchmark [Layout].
//
// Nothing a Collector reads is required to exist: missing files are replaced by
// sentinel values (-1 sizes and counts, [FailedIndicator], [NARecord]) and the
// remaining items are still processed.
type Collector struct {
	Layout Layout
	Logger *zap.Logger
}

// NewCollector creates a collector over the benchmark directory root.
func NewCollector(root string, logger *zap.Logger) *Collector {
	return &Collector{
		Layout: Layout{Root: root},
		Logger: logging.OrNop(logger),
	}
}

func (c *Collector) logger() *zap.Logger {
	return logging.OrNop(c.Logger)
}

// FileSize returns the size of the file at path, or -1 if it can't be stat'd.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return -1
	}
	return info.Size()
}

// SuccessIndicator returns the first character of the indicator file at path,
// or [FailedIndicator] if the file is missing or its first line is empty.
func SuccessIndicator(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return FailedIndicator
	}
	defer file.Close()

	first, _, err := bufio.NewReader(file).ReadRune()
	if err != nil || first == '\n' || first == '\r' {
		return FailedIndicator
	}
	return string(first)
}

// CountLines returns the number of lines in the file at path. A final line
// without a trailing newline still counts.
func CountLines(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	count := 0
	endsWithNewline := true
	buffer := make([]byte, 64*1024)
	for {
		n, err := file.Read(buffer)
		if n > 0 {
			count += bytes.Count(buffer[:n], []byte{'\n'})
			endsWithNewline = buffer[n-1] == '\n'
		}
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return count, err
		}
	}
	if !endsWithNewline {
		count++
	}
	return count, nil
}

func (c *Collector) loadRecord(path string) Record {
	record, found, err := LoadRecord(path)
	if err != nil {
		c.logger().Warn("Ignoring unreadable benchmark file", zap.String("path", path), zap.Error(err))
		return NARecord()
	}
	if !found {
		c.logger().Debug("Benchmark file missing", zap.String("path", path))
	}
	return record
}

// CompressionRows returns one row per dataset, in the order given.
func (c *Collector) CompressionRows(datasets []string) []CompressionRow {
	rows := make([]CompressionRow, 0, len(datasets))
	for _, dataset := range datasets {
		row := CompressionRow{
			Dataset:        dataset,
			OriginalSize:   FileSize(c.Layout.Source(dataset)),
			CompressedSize: FileSize(c.Layout.Compressed(dataset)),
			Record:         c.loadRecord(c.Layout.CompressionBench(dataset)),
		}
		c.logger().Debug(
			"Collected compression run",
			zap.String("dataset", dataset),
			zap.String("original", humanSize(row.OriginalSize)),
			zap.String("compressed", humanSize(row.CompressedSize)))
		rows = append(rows, row)
	}
	return rows
}

// QueryRows returns one row per approach, dataset and query length. Datasets
// form the outer loop, then approaches, then lengths, each in the order given.
//
// The first query length is reserved for another purpose by the benchmark
// runner and never appears in the output.
func (c *Collector) QueryRows(datasets, approaches []string, lengths []int) []QueryRow {
	var rows []QueryRow
	for _, dataset := range datasets {
		counts := make([]int, len(lengths))
		for k, length := range lengths {
			count, err := CountLines(c.Layout.Queries(dataset, length))
			if err != nil {
				c.logger().Warn(
					"Cannot count queries",
					zap.String("dataset", dataset),
					zap.Int("length", length),
					zap.Error(err))
				count = -1
			}
			counts[k] = count
		}

		for _, approach := range approaches {
			for k := 1; k < len(lengths); k++ {
				key := Key{Dataset: dataset, Length: lengths[k], Approach: approach}
				record := c.loadRecord(c.Layout.QueryBench(key))
				if approach == DecompressionApproach {
					record = c.accumulateDecompression(dataset, record)
				}
				rows = append(rows, QueryRow{
					Approach:    approach,
					Dataset:     dataset,
					QueryLength: key.Length,
					QueryCount:  counts[k],
					Successful:  SuccessIndicator(c.Layout.Indicator(key)),
					Record:      record,
				})
			}
		}
	}
	return rows
}

// accumulateDecompression folds the dataset's decompression run into the record
// of a query run. If the decompression run is missing, base is returned as is.
func (c *Collector) accumulateDecompression(dataset string, base Record) Record {
	path := c.Layout.DecompressionBench(dataset)
	extra, found, err := LoadRecord(path)
	if err != nil {
		c.logger().Warn("Ignoring unreadable benchmark file", zap.String("path", path), zap.Error(err))
		return base
	}
	if !found {
		return base
	}
	return Combine(base, extra)
}

// CollectCompression writes the compression summary of datasets to outPath.
func (c *Collector) CollectCompression(outPath string, datasets []string) error {
	rows := c.CompressionRows(datasets)
	return writeTableFile(outPath, func(w io.Writer) error {
		return WriteCompressionTable(w, rows)
	})
}

// CollectQueries writes the query summary to outPath.
func (c *Collector) CollectQueries(outPath string, datasets, approaches []string, lengths []int) error {
	rows := c.QueryRows(datasets, approaches, lengths)
	return writeTableFile(outPath, func(w io.Writer) error {
		return WriteQueryTable(w, rows)
	})
}

func humanSize(size int64) string {
	if size < 0 {
		return "missing"
	}
	return units.HumanSize(float64(size))
}
