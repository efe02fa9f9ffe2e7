// Package querygen draws random substring queries over a text corpus.
//
// A query is a half-open character range [Start, End) of the corpus. Every
// query of a set has the same length and no two share a start offset.
package querygen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"unicode/utf8"

	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/logging"
	"go.uber.org/zap"
)

// Query is a range of character offsets into the corpus.
type Query struct {
	Start int64
	End   int64
}

// CountCharacters returns the number of characters in a UTF-8 text. Bytes that
// are not valid UTF-8 are skipped, and a CRLF or lone CR line ending counts as a
// single character.
func CountCharacters(input io.Reader) (int64, error) {
	reader := bufio.NewReaderSize(input, 64*1024)
	var count int64

	for {
		r, size, err := reader.ReadRune()
		if errors.Is(err, io.EOF) {
			return count, nil
		} else if err != nil {
			return count, err
		}

		if r == utf8.RuneError && size == 1 {
			continue
		}
		if r == '\r' {
			next, peekErr := reader.Peek(1)
			if peekErr == nil && next[0] == '\n' {
				reader.Discard(1)
			}
		}
		count++
	}
}

// FileLength returns the number of characters in the file at path.
func FileLength(path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return CountCharacters(file)
}

// Sample draws n distinct start offsets from [0, length-queryLength) without
// replacement, in random order, and returns the corresponding queries.
func Sample(rng *rand.Rand, length, queryLength int64, n int) ([]Query, error) {
	if length < 0 || queryLength < 0 || n < 0 {
		return nil, ppcutils.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("length=%d, query length=%d, queries=%d", length, queryLength, n))
	}

	population := length - queryLength
	if population < 0 {
		population = 0
	}
	if int64(n) > population {
		return nil, ppcutils.ErrNotEnoughOffsets.WithMessage(
			fmt.Sprintf(
				"cannot draw %d queries of length %d from %d characters", n, queryLength, length))
	}

	// Partial Fisher-Yates shuffle of [0, population). Only displaced slots are
	// stored, so memory stays proportional to n.
	displaced := make(map[int64]int64, n)
	slot := func(i int64) int64 {
		if v, ok := displaced[i]; ok {
			return v
		}
		return i
	}

	queries := make([]Query, n)
	for i := int64(0); i < int64(n); i++ {
		j := i + rng.Int63n(population-i)
		start := slot(j)
		displaced[j] = slot(i)
		queries[i] = Query{Start: start, End: start + queryLength}
	}
	return queries, nil
}

// WriteQueries writes one "<start> <end>" line per query.
func WriteQueries(output io.Writer, queries []Query) error {
	writer := bufio.NewWriter(output)
	for _, query := range queries {
		if _, err := fmt.Fprintf(writer, "%d %d\n", query.Start, query.End); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// Generator writes query files.
type Generator struct {
	Rand   *rand.Rand
	Logger *zap.Logger
}

// NewGenerator creates a generator drawing from a source seeded with seed.
func NewGenerator(seed int64, logger *zap.Logger) *Generator {
	return &Generator{
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logging.OrNop(logger),
	}
}

// Generate draws numQueries queries of queryLength characters over the file at
// inputPath and writes them to outputPath. The output file is not created if the
// queries can't be drawn.
func (g *Generator) Generate(inputPath, outputPath string, queryLength int64, numQueries int) error {
	logger := logging.OrNop(g.Logger)
	logger.Info("Generating queries", zap.String("input", inputPath), zap.String("output", outputPath))

	length, err := FileLength(inputPath)
	if err != nil {
		return ppcutils.ErrMissingInput.WithMessage(inputPath).Wrap(err)
	}
	logger.Debug("Counted characters", zap.Int64("length", length))

	queries, err := Sample(g.Rand, length, queryLength, numQueries)
	if err != nil {
		return err
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err = WriteQueries(outFile, queries); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
