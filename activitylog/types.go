/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package activitylog

// Type identifies what happened. The value is stored verbatim in the
// ActivityLogType attribute and keys the message catalog.
type Type string

// hackathon
const (
	TypeCreateHackathon  Type = "createHackathon"
	TypeUpdateHackathon  Type = "updateHackathon"
	TypeDeleteHackathon  Type = "deleteHackathon"
	TypePublishHackathon Type = "publishHackathon"
	TypeApproveHackathon Type = "approveHackathon"
	TypeArchiveHackathon Type = "archiveHackathon"

	TypeCreateHackathonAdmin Type = "createHackathonAdmin"
	TypeDeleteHackathonAdmin Type = "deleteHackathonAdmin"
)

// team
const (
	TypeCreateTeam           Type = "createTeam"
	TypeUpdateTeam           Type = "updateTeam"
	TypeDeleteTeam           Type = "deleteTeam"
	TypeJoinTeam             Type = "joinTeam"
	TypeAddTeamMember        Type = "addTeamMember"
	TypeUpdateTeamMember     Type = "updateTeamMember"
	TypeUpdateTeamMemberRole Type = "updateTeamMemberRole"
	TypeDeleteTeamMember     Type = "deleteTeamMember"
	TypeCreateTeamWork       Type = "createTeamWork"
	TypeUpdateTeamWork       Type = "updateTeamWork"
	TypeDeleteTeamWork       Type = "deleteTeamWork"
)

// awards, judges and ratings
const (
	TypeCreateAward Type = "createAward"
	TypeUpdateAward Type = "updateAward"
	TypeDeleteAward Type = "deleteAward"

	TypeCreateJudge Type = "createJudge"
	TypeUpdateJudge Type = "updateJudge"
	TypeDeleteJudge Type = "deleteJudge"

	TypeCreateAwardAssignmentTeam       Type = "createAwardAssignmentTeam"
	TypeCreateAwardAssignmentIndividual Type = "createAwardAssignmentIndividual"
	TypeUpdateAwardAssignment           Type = "updateAwardAssignment"
	TypeDeleteAwardAssignment           Type = "deleteAwardAssignment"

	TypeCreateRatingKind Type = "createRatingKind"
	TypeUpdateRatingKind Type = "updateRatingKind"
	TypeDeleteRatingKind Type = "deleteRatingKind"
	TypeCreateRating     Type = "createRating"
	TypeUpdateRating     Type = "updateRating"
	TypeDeleteRating     Type = "deleteRating"
)

// enrollment
const (
	TypeCreateEnrollment  Type = "createEnrollment"
	TypeUpdateEnrollment  Type = "updateEnrollment"
	TypeApproveEnrollment Type = "approveEnrollment"
	TypeRejectEnrollment  Type = "rejectEnrollment"
)

// account and environments
const (
	TypeLogin Type = "login"

	TypeCreateTemplate   Type = "createTemplate"
	TypeUpdateTemplate   Type = "updateTemplate"
	TypeDeleteTemplate   Type = "deleteTemplate"
	TypeCreateExperiment Type = "createExperiment"
	TypeUpdateExperiment Type = "updateExperiment"
	TypeDeleteExperiment Type = "deleteExperiment"
)

// Category says which partition a copy of an event was written to.
type Category string

const (
	// CategoryUser copies live in the actor's partition.
	CategoryUser Category = "User"
	// CategoryHackathon copies live in the hackathon's partition.
	CategoryHackathon Category = "Hackathon"
)
