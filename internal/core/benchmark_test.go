package core

import (
	"fmt"
	"strings"
	"testing"
)

// ============================================================================
// Ingestion Benchmarks
// ============================================================================

// benchCSV builds a cut table with n rows spread over a few materials.
func benchCSV(n int) string {
	materials := []string{"Carbon Steel", "Stainless Steel", "Aluminium Alloy", "Carbon Steel (O2)", "Brass"}
	rows := make([]string, n)
	for i := range rows {
		rows[i] = cutRow(fmt.Sprintf("R%d", i), materials[i%len(materials)], fmt.Sprintf("%d", 1+i%20), "1.0-1.3")
	}
	return cutCSV(rows...)
}

// BenchmarkParse benchmarks full table ingestion.
func BenchmarkParse(b *testing.B) {
	raw := benchCSV(500)
	def := testCutDef()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Parse(raw, def)
	}
}

// BenchmarkSplitLine benchmarks the quote-aware splitter on a typical row.
func BenchmarkSplitLine(b *testing.B) {
	line := `MFSC-1000X_50um_Carbon Steel_6mm,MFSC-1000X,50,100,150,Carbon Steel,6,"1.0~1.2",1000,O2,0.6,1.2,Double,3,1,"Bright surface, low dross"`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SplitLine(line)
	}
}

// BenchmarkStoreIngestCached benchmarks re-ingesting unchanged text.
func BenchmarkStoreIngestCached(b *testing.B) {
	raw := benchCSV(500)
	def := testCutDef()
	s := NewStore(StoreOptions{})
	s.Ingest(def, raw)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Ingest(def, raw)
	}
}

// ============================================================================
// Lookup Benchmarks
// ============================================================================

// BenchmarkMatch benchmarks a nearest-thickness lookup over a full table.
func BenchmarkMatch(b *testing.B) {
	records, _ := Parse(benchCSV(500), testCutDef())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Match(records, "stainless steel", 7.5)
	}
}

// BenchmarkVariations benchmarks query expansion.
func BenchmarkVariations(b *testing.B) {
	queries := []string{"Carbon Steel", "Aluminum", "Stainless Steel 304", strings.Repeat("x", 32)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, q := range queries {
			Variations(q)
		}
	}
}
