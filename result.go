package mosespg

import (
	"regexp"
	"strconv"

	"github.com/jec/moses-pg/wire"
)

// tagRowCount extracts the trailing row count from a command tag, e.g.
// "DELETE 10" -> 10, "SELECT" -> not present. Grounded on the teacher's
// CommandTag.RowsAffected (conn.go) but kept as a free function returning
// (int64, bool) since Result needs to distinguish "no count" from "zero".
var tagRowCountPattern = regexp.MustCompile(`\s(\d+)$`)

func tagRowCount(tag string) (int64, bool) {
	m := tagRowCountPattern.FindStringSubmatch(tag)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Result accumulates the response to a single command: its column
// metadata (for SELECT-shaped results), the rows received, any notices
// raised along the way, and its completion tag. It is mutable while the
// engine owns it and becomes read-only once finish assigns Tag.
type Result struct {
	Columns       []wire.ColumnDescriptor
	ParameterOIDs []int32
	Rows          [][][]byte
	Notices       []map[string]string

	Tag              string
	ProcessedRowCount *int64
	finished          bool
}

func newResult() *Result {
	return &Result{}
}

// Finished reports whether a completion tag has been assigned.
func (r *Result) Finished() bool {
	return r.finished
}

func (r *Result) setColumns(cols []wire.ColumnDescriptor) {
	r.Columns = cols
}

func (r *Result) setParameterOIDs(oids []int32) {
	r.ParameterOIDs = oids
}

func (r *Result) appendRow(values [][]byte) {
	r.Rows = append(r.Rows, values)
}

func (r *Result) addNotice(fields map[string]string) {
	r.Notices = append(r.Notices, fields)
}

// finish assigns the completion tag and parses its trailing row count, if
// any. finish("DELETE 10") -> ProcessedRowCount = 10; finish("SELECT") ->
// ProcessedRowCount = nil.
func (r *Result) finish(tag string) {
	r.Tag = tag
	r.finished = true
	if n, ok := tagRowCount(tag); ok {
		r.ProcessedRowCount = &n
	}
}

// ResultGroup composes the Results produced by a single Simple Query: one
// per semicolon-separated statement, in order. It always holds at least
// one Result; every Result but the last may be finished.
type ResultGroup struct {
	results []*Result
}

func newResultGroup() *ResultGroup {
	return &ResultGroup{results: []*Result{newResult()}}
}

// Current returns the last, possibly still-accumulating, Result.
func (g *ResultGroup) Current() *Result {
	return g.results[len(g.results)-1]
}

// Results returns every Result gathered so far, in order.
func (g *ResultGroup) Results() []*Result {
	return g.results
}

// pushIfFinished starts a new Result if the current one is already
// finished, so the next append lands in a fresh accumulator. This is the
// "all but the last may be finalized" invariant from the data model.
func (g *ResultGroup) pushIfFinished() *Result {
	cur := g.Current()
	if cur.finished {
		cur = newResult()
		g.results = append(g.results, cur)
	}
	return cur
}
