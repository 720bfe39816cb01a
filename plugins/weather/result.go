package weather

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is reported before any network call when no key is set.
var ErrMissingAPIKey = errors.New("weather API key not configured")

// FailureKind classifies why a lookup failed
type FailureKind string

const (
	KindMissingKey   FailureKind = "missing_key"
	KindInvalidInput FailureKind = "invalid_input"
	KindTransport    FailureKind = "transport"
	KindStatus       FailureKind = "status"
	KindDecode       FailureKind = "decode"
)

// Failure is a typed lookup failure
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of one get_weather call. Exactly one of Report and
// Failure is set.
type Result struct {
	City    string
	Report  *Report
	Failure *Failure
}

// NewResult builds a Result from the outcome of Client.Current.
func NewResult(city string, report *Report, err error) Result {
	if err == nil {
		return Result{City: city, Report: report}
	}
	var f *Failure
	if !errors.As(err, &f) {
		f = &Failure{Kind: KindTransport, Err: err}
	}
	return Result{City: city, Failure: f}
}

// String renders the result as the text handed to the model.
func (r Result) String() string {
	if r.Failure != nil {
		if r.Failure.Kind == KindMissingKey {
			return "Error: Weather API key not configured"
		}
		return fmt.Sprintf("Error getting weather for %s: %s", r.City, r.Failure.Error())
	}
	if r.Report == nil {
		return fmt.Sprintf("Error getting weather for %s: empty report", r.City)
	}

	rep := r.Report
	return fmt.Sprintf("Weather in %s, %s: %s°C, %s. Humidity: %d%%, Wind: %s m/s",
		rep.Place, rep.Country, rep.TempC, rep.Description, rep.Humidity, rep.WindSpeed)
}
