package textdiff

import (
	"testing"

	"github.com/erraggy/outdiff/diffconfig"
)

func BenchmarkDiff(b *testing.B) {
	medA, medB := numbered(100, 10)
	largeA, largeB := numbered(1000, 50)

	cases := []struct {
		name     string
		old, new string
	}{
		{"small_3_lines", "line 1\nline 2\nline 3", "line 1\nline 2 modified\nline 3"},
		{"medium_100_lines", medA, medB},
		{"large_1000_lines", largeA, largeB},
	}

	cfg := diffconfig.Default()
	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Diff(tc.old, tc.new, cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
