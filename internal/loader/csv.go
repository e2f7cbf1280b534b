// Package loader reads portfolio definitions and prices from CSV files.
//
// Two definition layouts are supported: the block format, where a NAME,SHARES
// header is followed by portfolio sections (a row with an empty shares cell
// names the portfolio, the rows under it are its holdings), and a flat
// parent,child,weight edge list. Prices come from a symbol,price file.
package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"assetgraph/internal/domain"
)

type edgeRow struct {
	Parent string  `csv:"parent"`
	Child  string  `csv:"child"`
	Weight float64 `csv:"weight"`
}

type priceRow struct {
	Symbol string  `csv:"symbol"`
	Price  float64 `csv:"price"`
}

// LoadDefinitions reads the block format.
func LoadDefinitions(path string) ([]domain.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definitions file: %w", err)
	}
	defer f.Close()

	edges, err := ParseDefinitions(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return edges, nil
}

// ParseDefinitions walks the block rows. The format is stateful (a name-only
// row switches which portfolio the following rows belong to), so this reads
// raw csv records instead of unmarshalling rows into one struct shape.
func ParseDefinitions(r io.Reader) ([]domain.Edge, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty definitions file")
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 2 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "NAME") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "SHARES") {
		return nil, fmt.Errorf("definitions header must be NAME,SHARES, got %v", header)
	}

	edges := []domain.Edge{}
	currentPortfolio := ""
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		name := strings.TrimSpace(record[0])
		shares := ""
		if len(record) > 1 {
			shares = strings.TrimSpace(record[1])
		}

		if name == "" {
			return nil, fmt.Errorf("line %d: missing name", line)
		}

		// a row with no shares opens a new portfolio block
		if shares == "" {
			currentPortfolio = name
			continue
		}

		if currentPortfolio == "" {
			return nil, fmt.Errorf("line %d: holding %s appears before any portfolio name", line, name)
		}
		qty, err := strconv.ParseFloat(shares, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad share count %q: %w", line, shares, err)
		}
		edges = append(edges, domain.Edge{
			ParentID: currentPortfolio,
			ChildID:  name,
			Weight:   qty,
		})
	}

	if len(edges) == 0 {
		return nil, fmt.Errorf("definitions file contains no holdings")
	}
	return edges, nil
}

// LoadEdges reads the flat parent,child,weight layout.
func LoadEdges(path string) ([]domain.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open edges file: %w", err)
	}
	defer f.Close()

	edges, err := parseEdges(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return edges, nil
}

func parseEdges(r io.Reader) ([]domain.Edge, error) {
	rows := []edgeRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}

	edges := []domain.Edge{}
	for _, row := range rows {
		edges = append(edges, domain.Edge{
			ParentID: strings.TrimSpace(row.Parent),
			ChildID:  strings.TrimSpace(row.Child),
			Weight:   row.Weight,
		})
	}
	return edges, nil
}

// LoadHoldings reads a definitions file in whichever of the two layouts its
// header row declares.
func LoadHoldings(path string) ([]domain.Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definitions file: %w", err)
	}

	firstLine := strings.SplitN(string(data), "\n", 2)[0]
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(firstLine)), "parent") {
		edges, err := parseEdges(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return edges, nil
	}

	edges, err := ParseDefinitions(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return edges, nil
}

// LoadPrices reads a symbol,price file into initial leaf prices.
func LoadPrices(path string) ([]domain.LeafPrice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prices file: %w", err)
	}
	defer f.Close()

	rows := []priceRow{}
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	prices := []domain.LeafPrice{}
	for _, row := range rows {
		prices = append(prices, domain.LeafPrice{
			ID:    strings.TrimSpace(row.Symbol),
			Price: row.Price,
		})
	}
	return prices, nil
}
