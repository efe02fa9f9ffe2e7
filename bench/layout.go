package bench

import (
	"path/filepath"
	"strconv"
)

// DecompressionApproach is the approach whose query runs are preceded by a
// separate decompression run that has to be accounted for.
const DecompressionApproach = "dec"

// Key identifies the benchmark run of one approach, on one dataset, with one
// query length.
type Key struct {
	Dataset  string
	Length   int
	Approach string
}

func (k Key) stem() string {
	return k.Dataset + "." + strconv.Itoa(k.Length) + "." + k.Approach
}

// Layout maps benchmark identities to files under a benchmark root directory.
//
//	bench/<dataset>.csv                       compression run
//	bench/<dataset>.<length>.<approach>.csv   query run
//	bench/<dataset>.dec.csv                   decompression run
//	indicators/<dataset>.<length>.<approach>  query run success flag
//	source/<dataset>                          original file
//	data/<dataset>                            compressed file
//	queries/<dataset>.<length>                query definitions
type Layout struct {
	Root string
}

func (l Layout) join(elem ...string) string {
	return filepath.Join(append([]string{l.Root}, elem...)...)
}

func (l Layout) CompressionBench(dataset string) string {
	return l.join("bench", dataset+".csv")
}

func (l Layout) QueryBench(key Key) string {
	return l.join("bench", key.stem()+".csv")
}

func (l Layout) DecompressionBench(dataset string) string {
	return l.join("bench", dataset+"."+DecompressionApproach+".csv")
}

func (l Layout) Indicator(key Key) string {
	return l.join("indicators", key.stem())
}

func (l Layout) Source(dataset string) string {
	return l.join("source", dataset)
}

func (l Layout) Compressed(dataset string) string {
	return l.join("data", dataset)
}

func (l Layout) Queries(dataset string, length int) string {
	return l.join("queries", dataset+"."+strconv.Itoa(length))
}
