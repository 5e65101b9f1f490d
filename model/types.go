package model

import (
	"fmt"
	"time"
)

// Visibility is a project's visibility level.
type Visibility string

// Visibility levels as reported by the remote API.
const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
)

// Valid reports whether v is a known visibility level.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityInternal:
		return true
	}
	return false
}

// PipelineStatus is the state of a project's most recent pipeline.
// The empty string means no pipeline has been reported.
type PipelineStatus string

// Pipeline states as reported by the remote API.
const (
	PipelineNone     PipelineStatus = ""
	PipelineSuccess  PipelineStatus = "success"
	PipelineFailed   PipelineStatus = "failed"
	PipelineRunning  PipelineStatus = "running"
	PipelinePending  PipelineStatus = "pending"
	PipelineCanceled PipelineStatus = "canceled"
	PipelineSkipped  PipelineStatus = "skipped"
)

// Record is an immutable snapshot of one remote project's metadata.
//
// A re-fetch produces a replacement Record, never a mutation of a stored one.
type Record struct {
	ID                     int64          `json:"id"`
	InstanceID             int64          `json:"instanceId"`
	Name                   string         `json:"name"`
	Description            string         `json:"description,omitempty"`
	Visibility             Visibility     `json:"visibility"`
	BranchCount            int            `json:"branchCount"`
	StarCount              int            `json:"starCount"`
	ForkCount              int            `json:"forkCount"`
	OpenIssuesCount        int            `json:"openIssuesCount"`
	OpenMergeRequestsCount int            `json:"openMergeRequestsCount"`
	DefaultBranch          string         `json:"defaultBranch,omitempty"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
	LastActivityAt         time.Time      `json:"lastActivityAt"`
	PipelineStatus         PipelineStatus `json:"pipelineStatus,omitempty"`
	WebURL                 string         `json:"webUrl,omitempty"`
	SSHURL                 string         `json:"sshUrl,omitempty"`
	HTTPURL                string         `json:"httpUrl,omitempty"`
}

// String returns a short identifier for logging.
func (r Record) String() string {
	return fmt.Sprintf("Record(%d@%d %q)", r.ID, r.InstanceID, r.Name)
}

// SearchableText returns the concatenated text a fuzzy matcher scans:
// name, description, default branch and the project's addresses.
func (r Record) SearchableText() string {
	return r.Name + " " + r.Description + " " + r.DefaultBranch + " " +
		r.WebURL + " " + r.SSHURL + " " + r.HTTPURL
}
