package replicator

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// Config holds configuration for the replicator
type Config struct {
	Cache  *cache.Cache // Required
	Logger hclog.Logger // Optional
}

// Replicator keeps the denormalized copies of a character's party and guild
// membership in agreement inside the cache. Each character has three copies:
// its PlayerCharacter entry, its SocialCharacter entry and the member entry
// embedded in the party or guild aggregate.
//
// Updates are issued entry by entry with no cross-entry transaction. The
// persistence store has already been written when any of these run, so a
// copy that fails to update is healed by the next read-through.
type Replicator struct {
	cache  *cache.Cache
	logger hclog.Logger
}

// New creates a replicator
func New(cfg *Config) *Replicator {
	if cfg == nil {
		panic("replicator config cannot be nil")
	}
	if cfg.Cache == nil {
		panic("cache is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Replicator{
		cache:  cfg.Cache,
		logger: logger,
	}
}

// membership carries the fields replicated into character entries
type membership struct {
	partyID   *int
	guildID   *int
	guildRole *int
}

func (m membership) applyTo(c *entities.PlayerCharacter) {
	if m.partyID != nil {
		c.PartyID = *m.partyID
	}
	if m.guildID != nil {
		c.GuildID = *m.guildID
	}
	if m.guildRole != nil {
		c.GuildRole = *m.guildRole
	}
}

func (m membership) applyToSocial(c *entities.SocialCharacter) {
	if m.partyID != nil {
		c.PartyID = *m.partyID
	}
	if m.guildID != nil {
		c.GuildID = *m.guildID
	}
	if m.guildRole != nil {
		c.GuildRole = *m.guildRole
	}
}

func partyMembership(partyID int) membership {
	return membership{partyID: &partyID}
}

func guildMembership(guildID, role int) membership {
	return membership{guildID: &guildID, guildRole: &role}
}

// SyncParty caches the party and propagates the membership of the listed
// members, or of every member when none are listed, into their character
// entries. Read-throughs call it with no ids to reseed every projection.
func (r *Replicator) SyncParty(ctx context.Context, party *entities.Party, characterIDs ...string) {
	var result *multierror.Error

	members := party.Members
	if len(characterIDs) > 0 {
		members = members[:0:0]
		for _, id := range characterIDs {
			if m, ok := party.Member(id); ok {
				members = append(members, m)
			}
		}
	}

	for _, m := range members {
		m.PartyID = party.ID
		result = multierror.Append(result, r.propagate(ctx, m.ID, &m, partyMembership(party.ID)))
	}
	result = multierror.Append(result, r.cache.Parties.Set(ctx, party.ID, party))

	r.report("party", party.ID, result)
}

// DetachFromParty records that a character left a party. The party is
// recached when given, then the character's own entries are cleared.
func (r *Replicator) DetachFromParty(ctx context.Context, party *entities.Party, characterID string) {
	var result *multierror.Error

	result = multierror.Append(result, r.propagate(ctx, characterID, nil, partyMembership(0)))
	partyID := 0
	if party != nil {
		partyID = party.ID
		result = multierror.Append(result, r.cache.Parties.Set(ctx, party.ID, party))
	}

	r.report("party", partyID, result)
}

// ForgetParty invalidates a deleted party and clears the party id on every
// member's character entries
func (r *Replicator) ForgetParty(ctx context.Context, party *entities.Party) {
	var result *multierror.Error

	result = multierror.Append(result, r.cache.Parties.Remove(ctx, party.ID))
	for _, m := range party.Members {
		result = multierror.Append(result, r.propagate(ctx, m.ID, nil, partyMembership(0)))
	}

	r.report("party", party.ID, result)
}

// SyncGuild caches the guild and propagates guild id and role of the listed
// members, or of every member when none are listed, into their character
// entries. Only the guild fields are written; party membership recorded on
// the character entries is left as is.
func (r *Replicator) SyncGuild(ctx context.Context, guild *entities.Guild, characterIDs ...string) {
	var result *multierror.Error

	ids := characterIDs
	if len(ids) == 0 {
		ids = make([]string, 0, len(guild.Members))
		for id := range guild.Members {
			ids = append(ids, id)
		}
	}

	for _, id := range ids {
		m, ok := guild.Member(id)
		if !ok {
			continue
		}
		result = multierror.Append(result, r.propagate(ctx, id, &m, guildMembership(guild.ID, m.GuildRole)))
	}
	result = multierror.Append(result, r.cache.Guilds.Set(ctx, guild.ID, guild))

	r.report("guild", guild.ID, result)
}

// DetachFromGuild records that a character left a guild
func (r *Replicator) DetachFromGuild(ctx context.Context, guild *entities.Guild, characterID string) {
	var result *multierror.Error

	result = multierror.Append(result, r.propagate(ctx, characterID, nil, guildMembership(0, 0)))
	guildID := 0
	if guild != nil {
		guildID = guild.ID
		result = multierror.Append(result, r.cache.Guilds.Set(ctx, guild.ID, guild))
	}

	r.report("guild", guildID, result)
}

// ForgetGuild invalidates a deleted guild and clears guild id and role on
// every member's character entries
func (r *Replicator) ForgetGuild(ctx context.Context, guild *entities.Guild) {
	var result *multierror.Error

	result = multierror.Append(result, r.cache.Guilds.Remove(ctx, guild.ID))
	for id := range guild.Members {
		result = multierror.Append(result, r.propagate(ctx, id, nil, guildMembership(0, 0)))
	}

	r.report("guild", guild.ID, result)
}

// SyncCharacter caches a freshly written character and its social
// projection, and refreshes its embedded copies in any cached party or guild
func (r *Replicator) SyncCharacter(ctx context.Context, character *entities.PlayerCharacter) {
	var result *multierror.Error

	social := entities.NewSocialCharacter(character)
	result = multierror.Append(result, r.cache.PlayerCharacters.Set(ctx, character.ID, character))
	result = multierror.Append(result, r.cache.SocialCharacters.Set(ctx, character.ID, social))

	if character.PartyID != 0 {
		cached, err := r.cache.Parties.Get(ctx, character.PartyID)
		result = multierror.Append(result, err)
		if party, ok := cached.Get(); ok && party.UpdateMember(social) {
			result = multierror.Append(result, r.cache.Parties.Set(ctx, party.ID, party))
		}
	}
	if character.GuildID != 0 {
		cached, err := r.cache.Guilds.Get(ctx, character.GuildID)
		result = multierror.Append(result, err)
		if guild, ok := cached.Get(); ok && guild.UpdateMember(social) {
			result = multierror.Append(result, r.cache.Guilds.Set(ctx, guild.ID, guild))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		r.logger.Warn("character replication incomplete", "character_id", character.ID, "error", err)
	}
}

// ForgetCharacter invalidates both entries of a deleted character
func (r *Replicator) ForgetCharacter(ctx context.Context, characterID string) {
	var result *multierror.Error

	result = multierror.Append(result, r.cache.PlayerCharacters.Remove(ctx, characterID))
	result = multierror.Append(result, r.cache.SocialCharacters.Remove(ctx, characterID))

	if err := result.ErrorOrNil(); err != nil {
		r.logger.Warn("character invalidation incomplete", "character_id", characterID, "error", err)
	}
}

// propagate writes the membership fields in m into a character's cached
// entries and into its copy inside the other aggregate it belongs to. seed
// stands in for a social entry that is not cached; nil leaves it uncached.
func (r *Replicator) propagate(ctx context.Context, characterID string, seed *entities.SocialCharacter, m membership) error {
	var result *multierror.Error

	character, err := r.patchCharacter(ctx, characterID, m)
	result = multierror.Append(result, err)
	social, err := r.patchSocial(ctx, characterID, seed, m)
	result = multierror.Append(result, err)

	var partyID, guildID int
	switch {
	case social != nil:
		partyID, guildID = social.PartyID, social.GuildID
	case character != nil:
		partyID, guildID = character.PartyID, character.GuildID
	default:
		return result.ErrorOrNil()
	}

	if m.partyID != nil && guildID != 0 {
		result = multierror.Append(result, r.patchGuildCopy(ctx, guildID, characterID, m))
	}
	if (m.guildID != nil || m.guildRole != nil) && partyID != 0 {
		result = multierror.Append(result, r.patchPartyCopy(ctx, partyID, characterID, m))
	}
	return result.ErrorOrNil()
}

// patchCharacter rewrites membership fields on a cached PlayerCharacter.
// An uncached character is left alone; its next load reads the store.
func (r *Replicator) patchCharacter(ctx context.Context, characterID string, m membership) (*entities.PlayerCharacter, error) {
	cached, err := r.cache.PlayerCharacters.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}
	character, ok := cached.Get()
	if !ok {
		return nil, nil
	}
	m.applyTo(character)
	return character, r.cache.PlayerCharacters.Set(ctx, characterID, character)
}

func (r *Replicator) patchSocial(ctx context.Context, characterID string, seed *entities.SocialCharacter, m membership) (*entities.SocialCharacter, error) {
	cached, err := r.cache.SocialCharacters.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}
	social, ok := cached.Get()
	if !ok {
		if seed == nil {
			return nil, nil
		}
		social = *seed
	}
	m.applyToSocial(&social)
	return &social, r.cache.SocialCharacters.Set(ctx, characterID, social)
}

func (r *Replicator) patchGuildCopy(ctx context.Context, guildID int, characterID string, m membership) error {
	cached, err := r.cache.Guilds.Get(ctx, guildID)
	if err != nil {
		return err
	}
	guild, ok := cached.Get()
	if !ok {
		return nil
	}
	member, ok := guild.Member(characterID)
	if !ok {
		return nil
	}
	m.applyToSocial(&member)
	guild.UpdateMember(member)
	return r.cache.Guilds.Set(ctx, guildID, guild)
}

func (r *Replicator) patchPartyCopy(ctx context.Context, partyID int, characterID string, m membership) error {
	cached, err := r.cache.Parties.Get(ctx, partyID)
	if err != nil {
		return err
	}
	party, ok := cached.Get()
	if !ok {
		return nil
	}
	member, ok := party.Member(characterID)
	if !ok {
		return nil
	}
	m.applyToSocial(&member)
	party.UpdateMember(member)
	return r.cache.Parties.Set(ctx, partyID, party)
}

func (r *Replicator) report(kind string, id int, result *multierror.Error) {
	if err := result.ErrorOrNil(); err != nil {
		r.logger.Warn(fmt.Sprintf("%s replication incomplete", kind), kind+"_id", id, "error", err)
	}
}
