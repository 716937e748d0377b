package entities

import (
	"sort"

	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
)

// LeaderRole is the role index held by the guild leader
const LeaderRole = 0

// GuildRole is one row of a guild's role table
type GuildRole struct {
	Name          string `json:"name" toml:"name"`
	CanInvite     bool   `json:"can_invite" toml:"can_invite"`
	CanKick       bool   `json:"can_kick" toml:"can_kick"`
	CanUseStorage bool   `json:"can_use_storage" toml:"can_use_storage"`
}

// GuildSkillTable is the skill cost model, owned by game data
type GuildSkillTable interface {
	// MaxLevel returns the highest level a skill can reach, 0 when unbounded
	MaxLevel(skillID int) int
	// PointCost returns the skill points needed to raise a skill from level
	PointCost(skillID, level int) int
}

// Guild is the guild aggregate. Members maps character id to the member's
// social copy, whose GuildRole field is the member's role index.
type Guild struct {
	ID                 int                        `json:"id"`
	Name               string                     `json:"name"`
	LeaderID           string                     `json:"leader_id"`
	Level              int                        `json:"level"`
	Exp                int                        `json:"exp"`
	SkillPoint         int                        `json:"skill_point"`
	Message            string                     `json:"message"`
	Message2           string                     `json:"message2"`
	Score              int                        `json:"score"`
	Options            string                     `json:"options"`
	AutoAcceptRequests bool                       `json:"auto_accept_requests"`
	Rank               int                        `json:"rank"`
	Gold               int                        `json:"gold"`
	MaxMember          int                        `json:"max_member"` // 0 means no ceiling
	Roles              []GuildRole                `json:"roles"`
	Members            map[string]SocialCharacter `json:"members,omitempty"`
	Skills             map[int]int                `json:"skills,omitempty"`
}

// NewGuild creates a level 1 guild with a copy of the given role table
func NewGuild(id int, name, leaderID string, roles []GuildRole) *Guild {
	return &Guild{
		ID:       id,
		Name:     name,
		LeaderID: leaderID,
		Level:    1,
		Roles:    append([]GuildRole(nil), roles...),
		Members:  make(map[string]SocialCharacter),
		Skills:   make(map[int]int),
	}
}

// LowestRole is the lowest-privilege role index
func (g *Guild) LowestRole() int {
	if len(g.Roles) == 0 {
		return LeaderRole
	}
	return len(g.Roles) - 1
}

// ValidRole reports whether role indexes into the role table
func (g *Guild) ValidRole(role int) bool {
	return role >= 0 && role < len(g.Roles)
}

// IsMember reports whether the character belongs to the guild
func (g *Guild) IsMember(characterID string) bool {
	_, ok := g.Members[characterID]
	return ok
}

// Member returns the embedded copy for a character
func (g *Guild) Member(characterID string) (SocialCharacter, bool) {
	m, ok := g.Members[characterID]
	return m, ok
}

// IsFull reports whether the member ceiling is reached
func (g *Guild) IsFull() bool {
	return g.MaxMember > 0 && len(g.Members) >= g.MaxMember
}

// AddMember adds or refreshes a member copy with the given role
func (g *Guild) AddMember(member SocialCharacter, role int) error {
	if !g.ValidRole(role) {
		return dnderr.Validationf("guild role %d is out of range", role).
			WithReason(dnderr.ReasonInvalidGuildRole).
			WithMeta("guild_id", g.ID)
	}
	if !g.IsMember(member.ID) && g.IsFull() {
		return dnderr.Conflictf("guild %d reached its member limit of %d", g.ID, g.MaxMember).
			WithReason(dnderr.ReasonGuildFull).
			WithMeta("guild_id", g.ID)
	}
	if g.Members == nil {
		g.Members = make(map[string]SocialCharacter)
	}
	member.GuildID = g.ID
	member.GuildRole = role
	g.Members[member.ID] = member
	return nil
}

// RemoveMember drops a member and reports whether it was present
func (g *Guild) RemoveMember(characterID string) bool {
	if _, ok := g.Members[characterID]; !ok {
		return false
	}
	delete(g.Members, characterID)
	return true
}

// UpdateMember overwrites a member copy, keeping its role
func (g *Guild) UpdateMember(member SocialCharacter) bool {
	current, ok := g.Members[member.ID]
	if !ok {
		return false
	}
	member.GuildID = g.ID
	member.GuildRole = current.GuildRole
	g.Members[member.ID] = member
	return true
}

// SetLeader hands leadership to a member. The new leader takes the leader
// role and the previous leader drops to the lowest role.
func (g *Guild) SetLeader(characterID string) error {
	next, ok := g.Members[characterID]
	if !ok {
		return dnderr.Validationf("character %s is not a member of guild %d", characterID, g.ID).
			WithReason(dnderr.ReasonNotGuildMember)
	}
	if prev, ok := g.Members[g.LeaderID]; ok && g.LeaderID != characterID {
		prev.GuildRole = g.LowestRole()
		g.Members[prev.ID] = prev
	}
	next.GuildRole = LeaderRole
	g.Members[characterID] = next
	g.LeaderID = characterID
	return nil
}

// SetRole replaces one row of the role table
func (g *Guild) SetRole(role int, data GuildRole) error {
	if !g.ValidRole(role) {
		return dnderr.Validationf("guild role %d is out of range", role).
			WithReason(dnderr.ReasonInvalidGuildRole)
	}
	g.Roles[role] = data
	return nil
}

// SetMemberRole reassigns one member's role index
func (g *Guild) SetMemberRole(characterID string, role int) error {
	if !g.ValidRole(role) {
		return dnderr.Validationf("guild role %d is out of range", role).
			WithReason(dnderr.ReasonInvalidGuildRole)
	}
	member, ok := g.Members[characterID]
	if !ok {
		return dnderr.Validationf("character %s is not a member of guild %d", characterID, g.ID).
			WithReason(dnderr.ReasonNotGuildMember)
	}
	member.GuildRole = role
	g.Members[characterID] = member
	return nil
}

// IncreaseExp banks exp and levels up while the bank covers the requirement
// of the current level. expTree[level-1] is the exp needed to leave level;
// the level never reaches past len(expTree). Returns the levels gained.
func (g *Guild) IncreaseExp(expTree []int, exp int) int {
	if exp <= 0 {
		return 0
	}
	if g.Level < 1 {
		g.Level = 1
	}
	g.Exp += exp
	gained := 0
	for g.Level < len(expTree) {
		required := expTree[g.Level-1]
		if g.Exp < required {
			break
		}
		g.Exp -= required
		g.Level++
		g.SkillPoint++
		gained++
	}
	return gained
}

// SkillLevel returns the current level of a guild skill
func (g *Guild) SkillLevel(skillID int) int {
	return g.Skills[skillID]
}

// AddSkillLevel spends skill points to raise one skill by a level
func (g *Guild) AddSkillLevel(skillID int, table GuildSkillTable) error {
	level := g.Skills[skillID]
	cost := 1
	if table != nil {
		if maxLevel := table.MaxLevel(skillID); maxLevel > 0 && level >= maxLevel {
			return dnderr.Validationf("guild skill %d is at max level %d", skillID, maxLevel).
				WithReason(dnderr.ReasonSkillMaxLevel)
		}
		if c := table.PointCost(skillID, level); c > 0 {
			cost = c
		}
	}
	if g.SkillPoint <= 0 || g.SkillPoint < cost {
		return dnderr.Validationf("guild %d has %d skill points, needs %d", g.ID, g.SkillPoint, cost).
			WithReason(dnderr.ReasonNoSkillPoint)
	}
	if g.Skills == nil {
		g.Skills = make(map[int]int)
	}
	g.Skills[skillID] = level + 1
	g.SkillPoint -= cost
	return nil
}

// MemberList returns member copies ordered by role then name
func (g *Guild) MemberList() []SocialCharacter {
	list := make([]SocialCharacter, 0, len(g.Members))
	for _, m := range g.Members {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].GuildRole != list[j].GuildRole {
			return list[i].GuildRole < list[j].GuildRole
		}
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// Clone returns a deep copy
func (g *Guild) Clone() *Guild {
	if g == nil {
		return nil
	}
	clone := *g
	clone.Roles = append([]GuildRole(nil), g.Roles...)
	if g.Members != nil {
		clone.Members = make(map[string]SocialCharacter, len(g.Members))
		for k, v := range g.Members {
			clone.Members[k] = v
		}
	}
	if g.Skills != nil {
		clone.Skills = make(map[int]int, len(g.Skills))
		for k, v := range g.Skills {
			clone.Skills[k] = v
		}
	}
	return &clone
}
