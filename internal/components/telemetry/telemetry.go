package telemetry

import (
	"fmt"
)

// API is the sink every scraper reports into. It abstracts over logging and metrics so
// tests can assert on what a component reported.
//
// note: fault injection point
type API interface {
	// ReportBroken reports a component that broke in a way that should be looked at.
	//
	// `id` names the component, not the line of code: `<struct or intf>.<method>`,
	// all lowercase, dashes between words (ex. `client.fetch-songs`). The `report_...`
	// constants in each package are the ids in use.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something that isn't necessarily broken but may deserve
	// investigation, like a source page missing the structure we expect.
	ReportWarning(id string, params ...any)

	// ReportDebug reports progress information that is dropped unless verbose.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of something, counts are data points
	// over time and should not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI attaches a namespace to every report of the inner API, similar to
// creating a sub-logger with a prefix.
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI creates a ScopedAPI out of a given namespace and another api.
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
