package models

import "errors"

type IntervalProvenance string

const (
	IntervalProvenanceManual      IntervalProvenance = "manual"
	IntervalProvenanceGeoDetected IntervalProvenance = "geo-detected"
)

func (p IntervalProvenance) Valid() error {
	switch p {
	case IntervalProvenanceManual, IntervalProvenanceGeoDetected:
		return nil
	}
	return errors.New("invalid provenance")
}

type AlertSeverity string

const (
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

func (s AlertSeverity) Valid() error {
	switch s {
	case AlertSeverityMedium, AlertSeverityHigh, AlertSeverityCritical:
		return nil
	}
	return errors.New("invalid alert severity")
}
