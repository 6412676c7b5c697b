package telemetry

import "sync"

// Report is a single call captured by RecorderAPI.
type Report struct {
	Kind   string
	ID     string
	Params []any
	Count  int64
}

// RecorderAPI keeps every report in memory so tests can assert on them.
type RecorderAPI struct {
	lock    sync.Mutex
	Reports []Report
}

func (r *RecorderAPI) add(report Report) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Reports = append(r.Reports, report)
}

func (r *RecorderAPI) ReportBroken(id string, params ...any) {
	r.add(Report{Kind: "broken", ID: id, Params: params})
}

func (r *RecorderAPI) ReportWarning(id string, params ...any) {
	r.add(Report{Kind: "warning", ID: id, Params: params})
}

func (r *RecorderAPI) ReportDebug(id string, params ...any) {
	r.add(Report{Kind: "debug", ID: id, Params: params})
}

func (r *RecorderAPI) ReportCount(id string, count int64) {
	r.add(Report{Kind: "count", ID: id, Count: count})
}

// IDs returns the ids of every report of the given kind in order.
func (r *RecorderAPI) IDs(kind string) []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	var out []string
	for _, report := range r.Reports {
		if report.Kind == kind {
			out = append(out, report.ID)
		}
	}
	return out
}
