// Package parser converts log file content into normalized records.
package parser

// Stats counts what a parser did with one file.
type Stats struct {
	// Records is the number of records emitted.
	Records int `json:"records"`

	// Failed is the number of lines that could not be decoded and were
	// turned into UNKNOWN placeholder records.
	Failed int `json:"failed"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Records += other.Records
	s.Failed += other.Failed
}
