package models

import (
	"math"
	"time"
)

// ApplicationStatus is the pipeline stage of a job application.
type ApplicationStatus string

const (
	StatusInterested         ApplicationStatus = "Interested"
	StatusApplied            ApplicationStatus = "Applied"
	StatusApplicationViewed  ApplicationStatus = "Application Viewed"
	StatusPhoneScreening     ApplicationStatus = "Phone Screening"
	StatusTechnicalInterview ApplicationStatus = "Technical Interview"
	StatusOnSiteInterview    ApplicationStatus = "On-site Interview"
	StatusFinalInterview     ApplicationStatus = "Final Interview"
	StatusReferenceCheck     ApplicationStatus = "Reference Check"
	StatusOfferExtended      ApplicationStatus = "Offer Extended"
	StatusOfferAccepted      ApplicationStatus = "Offer Accepted"
	StatusOfferDeclined      ApplicationStatus = "Offer Declined"
	StatusRejected           ApplicationStatus = "Rejected"
	StatusWithdrawn          ApplicationStatus = "Withdrawn"
	StatusOnHold             ApplicationStatus = "On Hold"
)

// StatusProgression is the ordered list of forward pipeline stages.
// A transition that moves right in this list counts as positive.
var StatusProgression = []ApplicationStatus{
	StatusInterested,
	StatusApplied,
	StatusApplicationViewed,
	StatusPhoneScreening,
	StatusTechnicalInterview,
	StatusOnSiteInterview,
	StatusFinalInterview,
	StatusReferenceCheck,
	StatusOfferExtended,
	StatusOfferAccepted,
}

var negativeStatuses = map[ApplicationStatus]struct{}{
	StatusRejected:      {},
	StatusWithdrawn:     {},
	StatusOfferDeclined: {},
}

var neutralStatuses = map[ApplicationStatus]struct{}{
	StatusOnHold: {},
}

// AllStatuses lists every valid status: the progression plus terminal
// negative states and the neutral hold state.
var AllStatuses = func() []ApplicationStatus {
	out := make([]ApplicationStatus, 0, len(StatusProgression)+4)
	out = append(out, StatusProgression...)
	out = append(out, StatusOfferDeclined, StatusRejected, StatusWithdrawn, StatusOnHold)
	return out
}()

var progressionIndex = func() map[ApplicationStatus]int {
	m := make(map[ApplicationStatus]int, len(StatusProgression))
	for i, s := range StatusProgression {
		m[s] = i
	}
	return m
}()

var validStatuses = func() map[ApplicationStatus]struct{} {
	m := make(map[ApplicationStatus]struct{}, len(AllStatuses))
	for _, s := range AllStatuses {
		m[s] = struct{}{}
	}
	return m
}()

func ValidStatus(s ApplicationStatus) bool {
	_, ok := validStatuses[s]
	return ok
}

func IsNegativeStatus(s ApplicationStatus) bool {
	_, ok := negativeStatuses[s]
	return ok
}

func IsNeutralStatus(s ApplicationStatus) bool {
	_, ok := neutralStatuses[s]
	return ok
}

// TransitionKind classifies a single status change.
type TransitionKind string

const (
	TransitionPositive TransitionKind = "positive"
	TransitionNegative TransitionKind = "negative"
	TransitionNeutral  TransitionKind = "neutral"
)

// ClassifyTransition labels one status change. The initial transition
// (from == nil) is always positive. A move to a negative status is
// negative, to On Hold neutral, and a forward move along the
// progression positive. Anything unrecognized resolves to neutral
// rather than positive, so unknown statuses never inflate momentum.
func ClassifyTransition(from *ApplicationStatus, to ApplicationStatus) TransitionKind {
	if IsNegativeStatus(to) {
		return TransitionNegative
	}
	if IsNeutralStatus(to) {
		return TransitionNeutral
	}
	if from == nil {
		return TransitionPositive
	}
	fromIdx, fromOK := progressionIndex[*from]
	toIdx, toOK := progressionIndex[to]
	if fromOK && toOK && toIdx > fromIdx {
		return TransitionPositive
	}
	return TransitionNeutral
}

// ElapsedDays reports how many whole days separate ts from now,
// rounded up and never negative.
func ElapsedDays(ts, now time.Time) int {
	d := now.Sub(ts)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}
