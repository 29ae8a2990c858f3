package source

import (
	"strings"

	"legisync/internal/domain"
)

// Status normalizers translate source-specific status text into the canonical
// vocabulary. Checks run from the most advanced legislative stage down and the
// first match wins, so text mentioning both an early and a late stage lands on
// the late one. Unrecognized input defaults to Introduced; legislative status
// text varies too much across jurisdictions to treat as an error.

// NormalizeCongressStatus maps the latest-action text of a congress.gov bill.
func NormalizeCongressStatus(latestAction string) domain.Status {
	action := strings.ToLower(latestAction)
	switch {
	case strings.Contains(action, "became public law") || strings.Contains(action, "enacted"):
		return domain.StatusEnacted
	case strings.Contains(action, "vetoed"):
		return domain.StatusVetoed
	case strings.Contains(action, "failed") || strings.Contains(action, "rejected"):
		return domain.StatusFailed
	case strings.Contains(action, "passed senate"):
		return domain.StatusPassedSenate
	case strings.Contains(action, "passed house"):
		return domain.StatusPassedHouse
	case strings.Contains(action, "committee"):
		return domain.StatusCommitteeReview
	default:
		return domain.StatusIntroduced
	}
}

// NormalizeGovTrackStatus maps a GovTrack current_status code.
func NormalizeGovTrackStatus(currentStatus string) domain.Status {
	status := strings.ToLower(currentStatus)
	switch {
	case strings.Contains(status, "enacted"):
		return domain.StatusEnacted
	case strings.Contains(status, "vetoed"):
		return domain.StatusVetoed
	case strings.Contains(status, "fail") || strings.Contains(status, "rejected"):
		return domain.StatusFailed
	case strings.Contains(status, "pass_over:senate") || strings.Contains(status, "passed_senate"):
		return domain.StatusPassedSenate
	case strings.Contains(status, "pass_over:house") || strings.Contains(status, "passed_house"):
		return domain.StatusPassedHouse
	case strings.Contains(status, "referred") || strings.Contains(status, "committee"):
		return domain.StatusCommitteeReview
	default:
		return domain.StatusIntroduced
	}
}

// NormalizeOpenStatesClassification maps an Open States action classification
// list. State legislatures are single-chamber from the API's point of view, so
// a bare "passed" classification maps to the chamber-passed stage.
func NormalizeOpenStatesClassification(classification []string) domain.Status {
	classes := make([]string, 0, len(classification))
	for _, c := range classification {
		classes = append(classes, strings.ToLower(c))
	}

	switch {
	case containsAny(classes, "enacted", "became-law", "executive-signature"):
		return domain.StatusEnacted
	case containsAny(classes, "executive-veto", "vetoed"):
		return domain.StatusVetoed
	case containsAny(classes, "failure", "failed", "withdrawal"):
		return domain.StatusFailed
	case containsAny(classes, "passed", "passage"):
		return domain.StatusPassedHouse
	case containsAny(classes, "committee", "referral-committee"):
		return domain.StatusCommitteeReview
	default:
		return domain.StatusIntroduced
	}
}

func containsAny(haystack []string, needles ...string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}
