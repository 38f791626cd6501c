/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package activitylog

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/tablestore/pagination"
)

// ActivityLog is the API representation of an activity.
type ActivityLog struct {
	ActivityID       string          `json:"activityId"`
	HackathonName    string          `json:"hackathonName,omitempty"`
	OperatorID       string          `json:"operatorId,omitempty"`
	CorrelatedUserID string          `json:"correlatedUserId,omitempty"`
	TeamID           string          `json:"teamId,omitempty"`
	ActivityType     string          `json:"activityLogType"`
	Category         string          `json:"category"`
	Message          string          `json:"message,omitempty"`
	MessageFormat    string          `json:"messageFormat,omitempty"`
	Args             []string        `json:"args,omitempty"`
	CreatedAt        strfmt.DateTime `json:"createdAt"`
	UpdatedAt        strfmt.DateTime `json:"updatedAt"`
}

// ToModel converts a stored activity to its API form.
func ToModel(e *Entity) ActivityLog {
	return ActivityLog{
		ActivityID:       e.ActivityID(),
		HackathonName:    e.HackathonName,
		OperatorID:       e.UserID,
		CorrelatedUserID: e.CorrelatedUserID,
		TeamID:           e.TeamID,
		ActivityType:     string(e.ActivityType),
		Category:         string(e.Category),
		Message:          e.Message,
		MessageFormat:    e.MessageFormat,
		Args:             e.Args,
		CreatedAt:        strfmt.DateTime(e.CreatedAt),
		UpdatedAt:        strfmt.DateTime(e.Timestamp),
	}
}

// ToModelList converts a page of activities to the list envelope.
func ToModelList(entities []*Entity, request, next pagination.Pagination, params ...pagination.Param) pagination.ResourceList[ActivityLog] {
	models := make([]ActivityLog, 0, len(entities))
	for _, e := range entities {
		models = append(models, ToModel(e))
	}
	return pagination.NewResourceList(models, request, next, params...)
}
