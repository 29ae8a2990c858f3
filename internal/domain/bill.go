package domain

import (
	"encoding/json"
	"time"
)

// Canonical bill source identifiers.
const (
	SourceCongress       = "congress.gov"
	SourceGovTrack       = "govtrack"
	SourceOpenStates     = "openstates"
	SourceUserSubmission = "user-submission"
)

// Status is the canonical legislative stage vocabulary. Every source-specific
// status string is normalized into one of these values before persistence.
type Status string

const (
	StatusIntroduced      Status = "Introduced"
	StatusCommitteeReview Status = "Committee Review"
	StatusPassedHouse     Status = "Passed House"
	StatusPassedSenate    Status = "Passed Senate"
	StatusEnacted         Status = "Enacted"
	StatusVetoed          Status = "Vetoed"
	StatusFailed          Status = "Failed"
)

type Bill struct {
	ID               string
	ExternalID       string // "{source}-{native id}", unique, immutable
	Source           string
	BillNumber       string
	Title            string
	ShortDescription string
	FullText         string
	Status           Status
	IntroducedDate   time.Time
	Category         string
	Sponsor          *string
	OfficialURL      *string
	LastSynced       time.Time
	Cosponsors       json.RawMessage // opaque source payload, display only
	Committees       json.RawMessage
	ImpactData       *ImpactData
	Stages           []Stage
	Arguments        []Argument
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BillFilter narrows a bill listing; zero values mean no filter.
type BillFilter struct {
	Status string
	Source string
	Limit  int
}

// ImpactData is the AI-generated impact analysis persisted onto a bill.
// Field names are part of the structured-output contract.
type ImpactData struct {
	AffectedPopulation string   `json:"affected_population"`
	CostEstimate       string   `json:"cost_estimate"`
	GeographicScope    string   `json:"geographic_scope"`
	Timeline           string   `json:"timeline"`
	Sectors            []string `json:"sectors"`
}

// Stage is one step in an AI-generated progress timeline.
type Stage struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "completed", "current" or "pending"
	Date   string `json:"date,omitempty"`
}

// Argument is one AI-generated pro or con argument.
type Argument struct {
	Side   string `json:"side"` // "for" or "against"
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Representative is the result of a ZIP-code lookup against the civic API.
type Representative struct {
	Name     string `json:"name"`
	Party    string `json:"party"`
	District string `json:"district"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}
