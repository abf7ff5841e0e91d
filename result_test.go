package mosespg

import "testing"

func TestResultGroup_PushIfFinished(t *testing.T) {
	g := newResultGroup()
	g.Current().appendRow([][]byte{[]byte("1")})
	g.Current().finish("INSERT 0 1")

	second := g.pushIfFinished()
	if second == g.results[0] {
		t.Fatal("pushIfFinished should have started a new Result")
	}
	second.appendRow([][]byte{[]byte("2")})
	second.finish("INSERT 0 1")

	if len(g.Results()) != 2 {
		t.Fatalf("want 2 results, got %d", len(g.Results()))
	}

	// a Result not yet finished should be reused, not replaced.
	third := newResultGroup()
	third.Current().appendRow([][]byte{[]byte("x")})
	reused := third.pushIfFinished()
	if reused != third.Current() {
		t.Fatal("pushIfFinished should reuse an unfinished current Result")
	}
}

func TestResult_Finish_RowCount(t *testing.T) {
	r := newResult()
	r.finish("DELETE 10")
	if r.ProcessedRowCount == nil || *r.ProcessedRowCount != 10 {
		t.Fatalf("want 10, got %v", r.ProcessedRowCount)
	}
	if !r.Finished() {
		t.Fatal("want Finished() true")
	}

	r2 := newResult()
	r2.finish("SELECT")
	if r2.ProcessedRowCount != nil {
		t.Fatalf("want nil row count for bare tag, got %v", *r2.ProcessedRowCount)
	}
}
