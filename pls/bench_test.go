package pls_test

import (
	"testing"

	"github.com/katalvlaran/plsda/pls"
)

func BenchmarkFit(b *testing.B) {
	x, y := threeClass(42, 30, 200)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pls.Fit(x, y, 2); err != nil {
			b.Fatal(err)
		}
	}
}
