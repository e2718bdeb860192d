package query

import (
	"strconv"
	"testing"
)

func BenchmarkCompile(b *testing.B) {
	opts := DefaultOptions()
	for i := 0; i < b.N; i++ {
		_ = Compile(`+red "quick fox*" -wolf jump*`, opts)
	}
}

func BenchmarkCompiler_Cached(b *testing.B) {
	c, err := NewCompiler(DefaultCacheSize)
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()
	opts := DefaultOptions()
	c.Compile(`+red "quick fox*" -wolf jump*`, opts)
	c.Wait()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Compile(`+red "quick fox*" -wolf jump*`, opts)
	}
}

func BenchmarkRuleSet_FindAll(b *testing.B) {
	rs := Compile(`fox "lazy dog" -cat`, DefaultOptions())
	texts := make([]string, 100)
	for i := range texts {
		texts[i] = "The quick brown fox " + strconv.Itoa(i) + " jumps over the lazy dog"
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rs.FindAll(texts[i%len(texts)])
	}
}
