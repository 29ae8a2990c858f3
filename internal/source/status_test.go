package source

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"legisync/internal/domain"
)

func TestNormalizeCongressStatus(t *testing.T) {
	tests := []struct {
		name   string
		action string
		want   domain.Status
	}{
		{"became public law", "Became Public Law No: 119-21.", domain.StatusEnacted},
		{"enacted", "Enacted by the President", domain.StatusEnacted},
		{"vetoed", "Vetoed by President.", domain.StatusVetoed},
		{"failed", "Failed of passage in Senate", domain.StatusFailed},
		{"rejected", "Motion rejected", domain.StatusFailed},
		{"passed senate", "Passed Senate with an amendment by Yea-Nay Vote.", domain.StatusPassedSenate},
		{"passed house", "Passed House (Amended)", domain.StatusPassedHouse},
		{"committee referral", "Referred to the Committee on the Judiciary.", domain.StatusCommitteeReview},
		{"unknown action", "Sponsor introductory remarks on measure.", domain.StatusIntroduced},
		{"empty", "", domain.StatusIntroduced},
		// Later stages win when the text mentions several.
		{"committee and enacted", "Reported by committee; became public law", domain.StatusEnacted},
		{"passed house then senate", "Passed House, then Passed Senate", domain.StatusPassedSenate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCongressStatus(tt.action))
		})
	}
}

func TestNormalizeGovTrackStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   domain.Status
	}{
		{"enacted signed", "enacted_signed", domain.StatusEnacted},
		{"vetoed", "prov_kill:veto_override_failed_originating_house vetoed", domain.StatusVetoed},
		{"plain vetoed", "vetoed", domain.StatusVetoed},
		{"failed originating", "fail:originating:house", domain.StatusFailed},
		{"pass over senate", "pass_over:senate", domain.StatusPassedSenate},
		{"passed senate", "passed_senate", domain.StatusPassedSenate},
		{"pass over house", "pass_over:house", domain.StatusPassedHouse},
		{"passed house", "passed_house", domain.StatusPassedHouse},
		{"referred", "referred", domain.StatusCommitteeReview},
		{"reported by committee", "reported by committee", domain.StatusCommitteeReview},
		{"introduced", "introduced", domain.StatusIntroduced},
		{"empty", "", domain.StatusIntroduced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeGovTrackStatus(tt.status))
		})
	}
}

func TestNormalizeOpenStatesClassification(t *testing.T) {
	tests := []struct {
		name    string
		classes []string
		want    domain.Status
	}{
		{"enacted", []string{"enacted"}, domain.StatusEnacted},
		{"became law", []string{"became-law"}, domain.StatusEnacted},
		{"executive signature", []string{"executive-signature"}, domain.StatusEnacted},
		{"executive veto", []string{"executive-veto"}, domain.StatusVetoed},
		{"failure", []string{"failure"}, domain.StatusFailed},
		{"withdrawal", []string{"withdrawal"}, domain.StatusFailed},
		// Single-chamber states report a bare passage, mapped to the house stage.
		{"passage", []string{"passage"}, domain.StatusPassedHouse},
		{"passed", []string{"passed"}, domain.StatusPassedHouse},
		{"committee referral", []string{"referral-committee"}, domain.StatusCommitteeReview},
		{"introduction", []string{"introduction"}, domain.StatusIntroduced},
		{"nil", nil, domain.StatusIntroduced},
		{"empty", []string{}, domain.StatusIntroduced},
		{"mixed case", []string{"Enacted"}, domain.StatusEnacted},
		{"later stage wins", []string{"referral-committee", "passage", "executive-signature"}, domain.StatusEnacted},
		{"unknown classes", []string{"reading-1", "reading-2"}, domain.StatusIntroduced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOpenStatesClassification(tt.classes))
		})
	}
}
