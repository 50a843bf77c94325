package core

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// ============================================================================
// Classification Benchmarks
// ============================================================================

// BenchmarkInferType runs every precedence step, since varchar is checked last.
func BenchmarkInferType(b *testing.B) {
	values := make([]string, 1000)
	for i := range values {
		values[i] = fmt.Sprintf("2024-01-%02d", i%28+1)
	}
	values[len(values)-1] = "not a date"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		inferType(values)
	}
}

func BenchmarkParseDateTime_ISO(b *testing.B) {
	for i := 0; i < b.N; i++ {
		parseDateTime("2024-03-15T10:30:00+02:00")
	}
}

func BenchmarkParseDateTime_US(b *testing.B) {
	for i := 0; i < b.N; i++ {
		parseDateTime("03/15/2024")
	}
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

func BenchmarkParse(b *testing.B) {
	text := generateTestTSV(1000)
	cfg := ParseConfig{FirstLineHeaders: true, ConvertNullSentinel: true}

	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(text, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_Large(b *testing.B) {
	text := generateTestTSV(50000)
	cfg := ParseConfig{FirstLineHeaders: true, ConvertNullSentinel: true}

	b.SetBytes(int64(len(text)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(text, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEmitSQL(b *testing.B) {
	result, err := Parse(generateTestTSV(1000), ParseConfig{FirstLineHeaders: true, ConvertNullSentinel: true})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EmitSQL(result, "bench"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadInput(b *testing.B) {
	data := []byte("\xef\xbb\xbf" + generateTestTSV(10000))

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ReadInput(bytes.NewReader(data), DefaultMaxInputSize); err != nil {
			b.Fatal(err)
		}
	}
}

// generateTestTSV builds rows covering every column type plus null cells.
func generateTestTSV(rows int) string {
	var b strings.Builder
	b.WriteString("id\tactive\tcreated\tamount\tnote\n")
	for i := 0; i < rows; i++ {
		note := fmt.Sprintf("row %d", i)
		if i%10 == 0 {
			note = "NULL"
		}
		fmt.Fprintf(&b, "%d\t%v\t2024-01-%02dT10:00:00Z\t%d\t%s\n", i+1, i%2 == 0, i%28+1, i*100, note)
	}
	return b.String()
}
