package prompts

// Record is one scraped prompt page. It always carries every field,
// fields that were not on the page are empty. Records are values, a
// copy handed to a collector cannot be changed by the extractor.
type Record struct {
	URL    string
	values [fieldCount]string
}

func NewRecord(url string) Record {
	return Record{URL: url}
}

// RecordFromValues builds a record from stored values, keys outside the
// schema are rejected.
func RecordFromValues(url string, values map[Field]string) (Record, error) {
	record := NewRecord(url)
	for f, v := range values {
		if !f.valid() {
			return Record{}, ErrUnknownField
		}
		record.values[f] = v
	}
	return record, nil
}

func (r Record) Get(f Field) string {
	if !f.valid() {
		return ""
	}
	return r.values[f]
}

func (r *Record) set(f Field, value string) {
	r.values[f] = value
}

// Row renders the record in Columns() order.
func (r Record) Row() []string {
	row := make([]string, 0, fieldCount+1)
	row = append(row, r.URL)
	row = append(row, r.values[:]...)
	return row
}

// Rows renders every record in Columns() order.
func Rows(records []Record) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return rows
}
