package loader

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"assetgraph/internal/domain"
)

func Test_ParseDefinitions(t *testing.T) {
	t.Run("parses portfolio blocks", func(t *testing.T) {
		in := strings.Join([]string{
			"NAME,SHARES",
			"TECH,",
			"AAPL,100",
			"MSFT,200",
			"INDUSTRIALS,",
			"TECH,2",
		}, "\n")

		edges, err := ParseDefinitions(strings.NewReader(in))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]domain.Edge{
			{ParentID: "TECH", ChildID: "AAPL", Weight: 100},
			{ParentID: "TECH", ChildID: "MSFT", Weight: 200},
			{ParentID: "INDUSTRIALS", ChildID: "TECH", Weight: 2},
		}, edges))
	})

	t.Run("portfolio rows may omit the trailing comma", func(t *testing.T) {
		in := "NAME,SHARES\nTECH\nAAPL,100"
		edges, err := ParseDefinitions(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, edges, 1)
		require.Equal(t, "TECH", edges[0].ParentID)
	})

	t.Run("header is case insensitive", func(t *testing.T) {
		in := "name,shares\nTECH,\nAAPL,100"
		_, err := ParseDefinitions(strings.NewReader(in))
		require.NoError(t, err)
	})

	t.Run("rejects a wrong header", func(t *testing.T) {
		in := "TICKER,QTY\nTECH,\nAAPL,100"
		_, err := ParseDefinitions(strings.NewReader(in))
		require.ErrorContains(t, err, "header must be NAME,SHARES")
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		_, err := ParseDefinitions(strings.NewReader(""))
		require.ErrorContains(t, err, "empty definitions file")
	})

	t.Run("rejects holdings before any portfolio", func(t *testing.T) {
		in := "NAME,SHARES\nAAPL,100"
		_, err := ParseDefinitions(strings.NewReader(in))
		require.ErrorContains(t, err, "before any portfolio name")
	})

	t.Run("rejects unparsable share counts", func(t *testing.T) {
		in := "NAME,SHARES\nTECH,\nAAPL,lots"
		_, err := ParseDefinitions(strings.NewReader(in))
		require.ErrorContains(t, err, "bad share count")
	})

	t.Run("rejects a file with headers only", func(t *testing.T) {
		in := "NAME,SHARES\nTECH,"
		_, err := ParseDefinitions(strings.NewReader(in))
		require.ErrorContains(t, err, "no holdings")
	})
}

func Test_LoadDefinitions(t *testing.T) {
	edges, err := LoadDefinitions("testdata/portfolios.csv")
	require.NoError(t, err)
	require.Len(t, edges, 8)

	// spot check the nested portfolio at the end of the file
	require.Equal(t, "", cmp.Diff([]domain.Edge{
		{ParentID: "INDUSTRIALS", ChildID: "TECH", Weight: 2},
		{ParentID: "INDUSTRIALS", ChildID: "AUTOS", Weight: 3},
	}, edges[6:]))
}

func Test_LoadPrices(t *testing.T) {
	prices, err := LoadPrices("testdata/prices.csv")
	require.NoError(t, err)
	require.Len(t, prices, 6)
	require.Equal(t, "", cmp.Diff(domain.LeafPrice{ID: "AAPL", Price: 170.5}, prices[0]))
}

func Test_LoadEdges(t *testing.T) {
	edges, err := LoadEdges("testdata/edges.csv")
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff([]domain.Edge{
		{ParentID: "P", ChildID: "A", Weight: 2},
		{ParentID: "P", ChildID: "B", Weight: 1},
		{ParentID: "Q", ChildID: "P", Weight: 1},
		{ParentID: "Q", ChildID: "A", Weight: 1},
	}, edges))
}

func Test_LoadHoldings(t *testing.T) {
	t.Run("sniffs the flat layout", func(t *testing.T) {
		edges, err := LoadHoldings("testdata/edges.csv")
		require.NoError(t, err)
		require.Len(t, edges, 4)
		require.Equal(t, "P", edges[0].ParentID)
	})

	t.Run("sniffs the block layout", func(t *testing.T) {
		edges, err := LoadHoldings("testdata/portfolios.csv")
		require.NoError(t, err)
		require.Len(t, edges, 8)
	})
}
