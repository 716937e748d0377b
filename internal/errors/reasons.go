package errors

// Reason codes surfaced to the game servers alongside the error code.
const (
	ReasonNameInUse                   = "name_in_use"
	ReasonNameInserting               = "name_inserting"
	ReasonStorageLocked               = "storage_locked"
	ReasonOtherMemberAccessingStorage = "other_member_accessing_storage"
	ReasonStorageReservationExpired   = "storage_reservation_expired"
	ReasonGuildFull                   = "guild_full"
	ReasonInvalidGuildRole            = "invalid_guild_role"
	ReasonNotGuildMember              = "not_guild_member"
	ReasonNoSkillPoint                = "no_skill_point"
	ReasonSkillMaxLevel               = "skill_max_level"
	ReasonMailNoReceiver              = "mail_no_receiver"
	ReasonMailReadNotAllowed          = "mail_read_not_allowed"
	ReasonMailClaimNotAllowed         = "mail_claim_not_allowed"
	ReasonMailDeleteNotAllowed        = "mail_delete_not_allowed"
	ReasonCharacterOwnerMismatch      = "character_owner_mismatch"
	ReasonInvalidCredentials          = "invalid_credentials"
)
