package convert

import "strings"

// Classification is the closed set of failure categories derived from the
// downloader's stderr text.
type Classification int

const (
	// ClassRetryable covers unrecognized failures; the next strategy may
	// still succeed.
	ClassRetryable Classification = iota

	// ClassBlocked means the host is actively throttling or blocking
	// automated requests. Retryable within a request — a different
	// simulated client may get through — but surfaced as its own terminal
	// category once every strategy has failed.
	ClassBlocked

	// ClassUnavailable means the resource can never be fetched (private,
	// removed, region-locked). Terminal immediately.
	ClassUnavailable
)

func (c Classification) String() string {
	switch c {
	case ClassBlocked:
		return "blocked"
	case ClassUnavailable:
		return "unavailable"
	default:
		return "retryable"
	}
}

// classificationRule maps a stderr substring to a failure category.
type classificationRule struct {
	Substring string
	Class     Classification
}

// classificationRules is the versioned substring table. yt-dlp's stderr text
// is not a stable interface; when upstream wording changes, update this
// table, not the control flow.
//
// Revision: 2026-08 wording.
var classificationRules = []classificationRule{
	// Active blocking / throttling
	{Substring: "HTTP Error 403", Class: ClassBlocked},
	{Substring: "HTTP Error 429", Class: ClassBlocked},
	{Substring: "Sign in to confirm", Class: ClassBlocked},
	{Substring: "nsig extraction failed", Class: ClassBlocked},

	// Permanent unavailability
	{Substring: "Private video", Class: ClassUnavailable},
	{Substring: "Video unavailable", Class: ClassUnavailable},
	{Substring: "members-only", Class: ClassUnavailable},
	{Substring: "available in your country", Class: ClassUnavailable},
	{Substring: "has been removed", Class: ClassUnavailable},
	{Substring: "account associated with this video has been terminated", Class: ClassUnavailable},
}

// Classify matches stderr text against the classification table. Unavailable
// outranks blocked when both appear, since no amount of retrying helps a
// deleted video.
func Classify(stderr string) Classification {
	result := ClassRetryable
	for _, rule := range classificationRules {
		if !strings.Contains(stderr, rule.Substring) {
			continue
		}
		if rule.Class == ClassUnavailable {
			return ClassUnavailable
		}
		result = rule.Class
	}
	return result
}
