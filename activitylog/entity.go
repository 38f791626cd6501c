/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package activitylog

import (
	"time"

	"github.com/suparena/tablestore/storagemodels"
)

// Entity is one stored copy of an activity.
// PartitionKey is the user id or the hackathon name, depending on Category.
// RowKey is generated on write.
type Entity struct {
	storagemodels.TableEntity

	ActivityType     Type      `dynamodbav:"ActivityLogType" json:"activityLogType"`
	HackathonName    string    `dynamodbav:"HackathonName,omitempty" json:"hackathonName,omitempty"`
	UserID           string    `dynamodbav:"UserId,omitempty" json:"userId,omitempty"`
	CorrelatedUserID string    `dynamodbav:"CorrelatedUserId,omitempty" json:"correlatedUserId,omitempty"`
	TeamID           string    `dynamodbav:"TeamId,omitempty" json:"teamId,omitempty"`
	Category         Category  `dynamodbav:"Category" json:"category"`
	Message          string    `dynamodbav:"Message,omitempty" json:"message,omitempty"`
	MessageFormat    string    `dynamodbav:"MessageFormat,omitempty" json:"messageFormat,omitempty"`
	Args             []string  `dynamodbav:"Args,omitempty" json:"args,omitempty"`
	CreatedAt        time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

// ActivityID is the generated row key shared by every copy of the activity.
func (e *Entity) ActivityID() string {
	return e.RowKey
}

// Clone returns a copy that shares nothing mutable with e.
func (e *Entity) Clone() *Entity {
	c := *e
	if e.Args != nil {
		c.Args = append([]string(nil), e.Args...)
	}
	return &c
}
