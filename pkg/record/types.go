// Package record defines the normalized log record produced by every parser.
package record

// Conventional level names. Any string is accepted as a level.
const (
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"

	// LevelUnknown marks placeholder records built from lines that failed to parse.
	LevelUnknown = "UNKNOWN"
)

// KnownLevels lists the conventional levels in severity order.
var KnownLevels = []string{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}

// LogRecord is one parsed log entry.
type LogRecord struct {
	// Timestamp is kept exactly as read. It is only interpreted as a
	// date when filtering or charting.
	Timestamp string `json:"timestamp"`

	// Level is the severity label, possibly empty.
	Level string `json:"level"`

	// Message is the human-readable body, possibly empty.
	Message string `json:"message"`

	// Raw is the source fragment the record was built from.
	Raw string `json:"raw"`

	// Source is the name of the file the record came from.
	Source string `json:"source,omitempty"`
}

// Display returns the message, or the raw text when the message is empty.
func (r LogRecord) Display() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Raw
}

// LevelOrUnknown returns the level, or UNKNOWN when none was recorded.
func (r LogRecord) LevelOrUnknown() string {
	if r.Level == "" {
		return LevelUnknown
	}
	return r.Level
}
