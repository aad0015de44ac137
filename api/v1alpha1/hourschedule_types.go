package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// HourScheduleKind is the kind name of HourSchedule manifests.
const HourScheduleKind = "HourSchedule"

// HourScheduleSpec describes a scheduling problem: the providers with their free
// hours and the requests with the hours they need. Entry order is significant.
type HourScheduleSpec struct {
	// Providers lists who can serve requests.
	// +kubebuilder:validation:Optional
	// +listType=map
	// +listMapKey=name
	Providers []ProviderSpec `json:"providers,omitempty"`

	// Requests lists the work that must be served.
	// +kubebuilder:validation:Optional
	// +listType=map
	// +listMapKey=name
	Requests []RequestSpec `json:"requests,omitempty"`
}

// ProviderSpec is one provider and its capacity in hours.
type ProviderSpec struct {
	// Name uniquely identifies the provider.
	// +kubebuilder:validation:MinLength=1
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// Hours is the number of free hours.
	// +kubebuilder:validation:Minimum=0
	Hours int `json:"hours"`
}

// RequestSpec is one request and the hours it needs.
type RequestSpec struct {
	// Name uniquely identifies the request.
	// +kubebuilder:validation:MinLength=1
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// Hours is the number of hours needed.
	// +kubebuilder:validation:Minimum=0
	Hours int `json:"hours"`
}

// HourScheduleStatus is the outcome of the last scheduling run.
type HourScheduleStatus struct {
	// Feasible is set once a run has decided the problem.
	// +optional
	Feasible *bool `json:"feasible,omitempty"`

	// Assignments holds one schedule when Feasible is true, sorted by provider.
	// Providers serving nothing are listed with no requests.
	// +optional
	Assignments []ProviderAssignment `json:"assignments,omitempty"`

	// Stats describes the search work of the last run.
	// +optional
	Stats SearchStats `json:"stats,omitempty"`

	// LastRunTime is the timestamp of the last scheduling run.
	// +optional
	LastRunTime metav1.Time `json:"lastRunTime,omitempty"`

	// Conditions represent the latest available observations of the HourSchedule's state
	// +kubebuilder:validation:Optional
	// +patchMergeKey=type
	// +patchStrategy=merge
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty" patchStrategy:"merge" patchMergeKey:"type"`
}

// ProviderAssignment lists the requests served by one provider.
type ProviderAssignment struct {
	Provider string   `json:"provider"`
	Requests []string `json:"requests"`
}

// SearchStats counts the search work of a run.
type SearchStats struct {
	Nodes      int64 `json:"nodes"`
	Backtracks int64 `json:"backtracks"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=hs
// +kubebuilder:printcolumn:name="Providers",type=integer,JSONPath=".spec.providers.length()"
// +kubebuilder:printcolumn:name="Feasible",type=boolean,JSONPath=".status.feasible"
// +kubebuilder:printcolumn:name="Scheduled",type=string,JSONPath=".status.conditions[?(@.type=='Scheduled')].status"
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=".metadata.creationTimestamp"

// HourSchedule is the Schema for the hourschedules API.
type HourSchedule struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// Spec is the scheduling problem.
	Spec HourScheduleSpec `json:"spec,omitempty"`

	// Status is the outcome of the last run.
	Status HourScheduleStatus `json:"status,omitempty"`
}

// HourScheduleList contains a list of HourSchedule resources.
// +kubebuilder:object:root=true
type HourScheduleList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`

	// Items is the list of HourSchedule resources.
	Items []HourSchedule `json:"items"`
}

func init() {
	SchemeBuilder.Register(&HourSchedule{}, &HourScheduleList{})
}

// Condition Types for HourSchedule
const (
	// TypeScheduled indicates whether the last run decided the problem
	TypeScheduled = "Scheduled"
)

// Condition Reasons for Scheduled
const (
	// ReasonScheduleFound indicates every request was placed
	ReasonScheduleFound = "ScheduleFound"
	// ReasonNoSchedule indicates no placement serves every request
	ReasonNoSchedule = "NoSchedule"
	// ReasonInvalidProblem indicates duplicate names or negative hours
	ReasonInvalidProblem = "InvalidProblem"
	// ReasonSearchAborted indicates the search hit its node budget or was cancelled
	ReasonSearchAborted = "SearchAborted"
)
