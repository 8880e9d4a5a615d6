package model

import "errors"

// Error kinds surfaced by the recommendation pipeline. Components wrap these
// with detail; callers match them with errors.Is.
var (
	// ErrEncoding reports an empty or malformed catalog.
	ErrEncoding = errors.New("encoding error")
	// ErrConfiguration reports an invalid cluster count, iteration cap or
	// other pipeline setting.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoEligibleCluster reports that no cluster has two or more members,
	// so no experience density could be fitted.
	ErrNoEligibleCluster = errors.New("no eligible cluster")
)

// Kind returns a short label for the error kind wrapped by err, suitable for
// metrics and API error codes.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEncoding):
		return "encoding"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrNoEligibleCluster):
		return "no_eligible_cluster"
	default:
		return "internal"
	}
}
