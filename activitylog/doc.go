/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package activitylog records who did what, once per interested partition.
//
// One logical activity is copied into the actor's partition (Category User)
// and into the hackathon's partition (Category Hackathon). Both copies share
// a row key built from InversedTimeKey, so a partition read in row-key order
// returns the newest activity first.
//
// Logging an activity never fails the caller:
//
//	res := writer.LogActivity(ctx, &activitylog.Entity{
//		ActivityType:  activitylog.TypeJoinTeam,
//		UserID:        userID,
//		HackathonName: hackathon,
//		Args:          []string{hackathon, teamName, userName},
//	})
//	if err := res.Err(); err != nil {
//		// already logged and counted; informational only
//	}
package activitylog
