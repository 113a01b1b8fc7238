package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAccumulates(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("print", time.Millisecond)
		}()
	}
	wg.Wait()
	tm.Add("lex", 2*time.Millisecond)

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.Phases[0].Name != "print" || r.Phases[0].Count != 8 || r.Phases[0].DurationMS != 8 {
		t.Fatalf("print phase = %+v", r.Phases[0])
	}
	if r.TotalMS != 10 {
		t.Fatalf("total = %v, want 10", r.TotalMS)
	}
}

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("collect")
	tm.End(idx, "3 files")
	tm.End(42, "ignored")

	s := tm.Summary()
	if !strings.Contains(s, "collect") || !strings.Contains(s, "// 3 files") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Add("lex", time.Second)
	tm.End(tm.Begin("x"), "")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}
