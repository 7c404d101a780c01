package output

import (
	"encoding/json"

	"github.com/mv/qmlhook/internal/format"
)

// JSONFormatter renders results as JSON Lines, one object per file.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonResult is the serialization format for one file outcome.
type jsonResult struct {
	Type   string `json:"type"`
	File   string `json:"file"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// jsonSummary is the serialization format for the end-of-run line.
type jsonSummary struct {
	Type        string `json:"type"`
	Checked     int    `json:"checked"`
	NeedsFormat int    `json:"needs_format"`
	Reformatted int    `json:"reformatted"`
	Errors      int    `json:"errors"`
}

func (f *JSONFormatter) Format(buf []byte, res format.Result, verbose bool) []byte {
	if res.Status == format.StatusOK && !verbose {
		return buf
	}
	data, _ := json.Marshal(jsonResult{
		Type:   "result",
		File:   res.Path,
		Status: res.Status.String(),
		Detail: res.Detail,
	})
	buf = append(buf, data...)
	buf = append(buf, '\n')
	return buf
}

func (f *JSONFormatter) Summary(buf []byte, t Tally) []byte {
	data, _ := json.Marshal(jsonSummary{
		Type:        "summary",
		Checked:     t.Total,
		NeedsFormat: t.NeedsFormat,
		Reformatted: t.Changed,
		Errors:      t.Errors,
	})
	buf = append(buf, data...)
	buf = append(buf, '\n')
	return buf
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
