package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfDSIGOperation is perf metric
	PerfDSIGOperation = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_dsig",
		Help:         "perf_dsig provides the sample metrics of DSIG operations",
		RequiredTags: []string{"action"},
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfDSIGOperation,
}
