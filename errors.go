package pano

import "errors"

// Fault classes shared by every pano package. Package-level errors wrap one
// of these so callers can classify a failure with errors.Is without
// importing the package that produced it.
var (
	// ErrResourceExhausted reports that a bounded store cannot admit another
	// item without violating its policy, e.g. a loading cache whose residents
	// are all visible.
	ErrResourceExhausted = errors.New("pano: resource exhausted")

	// ErrDataIntegrity reports malformed provider data, e.g. a panorama
	// without one of its six faces.
	ErrDataIntegrity = errors.New("pano: data integrity fault")

	// ErrUnsupportedEvent reports a subscription to an unknown event kind.
	ErrUnsupportedEvent = errors.New("pano: unsupported event")
)
