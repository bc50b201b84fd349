package weather

import "errors"

// Kind classifies a failed provider operation for programmatic handling.
type Kind int

const (
	KindNetworkOrServer Kind = iota
	KindRateLimited
	KindCityNotFound
	KindInvalidCredential
)

func (k Kind) String() string {
	switch k {
	case KindCityNotFound:
		return "city_not_found"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "network_or_server_error"
	}
}

// Error carries the classified kind together with a user-visible message.
// When the provider's error body includes a message, that message wins.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf extracts the Kind from err. The second result is false when err was
// not produced by this package.
func KindOf(err error) (Kind, bool) {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind, true
	}
	return KindNetworkOrServer, false
}

// kindFromStatus maps an HTTP status code onto the error taxonomy.
func kindFromStatus(status int) Kind {
	switch {
	case status == 400 || status == 404:
		return KindCityNotFound
	case status == 401:
		return KindInvalidCredential
	case status == 429:
		return KindRateLimited
	default:
		return KindNetworkOrServer
	}
}

// moreSevere picks the error to surface when both fetch legs failed.
// Severity order: credential > not-found > rate-limit > everything else.
func moreSevere(a, b error) error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	ka, _ := KindOf(a)
	kb, _ := KindOf(b)
	if kb > ka {
		return b
	}
	return a
}
