package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// DefaultMemberRoles is the number of non-leader roles in the default table
const DefaultMemberRoles = 5

// GuildSkill is the cost model of one guild skill
type GuildSkill struct {
	ID       int   `toml:"id"`
	MaxLevel int   `toml:"max_level"`
	Costs    []int `toml:"costs"` // costs[level] is the price of leaving level; missing entries cost 1
}

// SocialSettings is the guild game data the gateway needs to mutate guilds
type SocialSettings struct {
	GuildRoles             []entities.GuildRole `toml:"guild_roles"`
	GuildExpTree           []int                `toml:"guild_exp_tree"`
	GuildSkills            []GuildSkill         `toml:"guild_skills"`
	DefaultMaxGuildMembers int                  `toml:"default_max_guild_members"`

	skills map[int]GuildSkill
}

// DefaultSocialSettings returns a master role with every permission followed
// by plain member roles, and an empty exp tree
func DefaultSocialSettings() *SocialSettings {
	roles := []entities.GuildRole{{
		Name:          "Master",
		CanInvite:     true,
		CanKick:       true,
		CanUseStorage: true,
	}}
	for i := 1; i <= DefaultMemberRoles; i++ {
		roles = append(roles, entities.GuildRole{Name: fmt.Sprintf("Member %d", i)})
	}
	s := &SocialSettings{GuildRoles: roles}
	s.index()
	return s
}

// LoadSocialSettings reads the settings file. An empty path or a missing
// file yields the defaults.
func LoadSocialSettings(path string, logger hclog.Logger) (*SocialSettings, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if path == "" {
		return DefaultSocialSettings(), nil
	}

	s := &SocialSettings{}
	meta, err := toml.DecodeFile(path, s)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("social settings file not found, using defaults", "path", path)
		return DefaultSocialSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode social settings %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warn("undecoded social settings keys", "path", path, "keys", undecoded)
	}

	if len(s.GuildRoles) == 0 {
		s.GuildRoles = DefaultSocialSettings().GuildRoles
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid social settings %s: %w", path, err)
	}
	s.index()
	return s, nil
}

func (s *SocialSettings) validate() error {
	if len(s.GuildRoles) < 2 {
		return fmt.Errorf("guild_roles needs a leader role and at least one member role")
	}
	for i := 1; i < len(s.GuildExpTree); i++ {
		if s.GuildExpTree[i] < s.GuildExpTree[i-1] {
			return fmt.Errorf("guild_exp_tree must be non-decreasing at level %d", i+1)
		}
	}
	if s.DefaultMaxGuildMembers < 0 {
		return fmt.Errorf("default_max_guild_members cannot be negative")
	}
	return nil
}

func (s *SocialSettings) index() {
	s.skills = make(map[int]GuildSkill, len(s.GuildSkills))
	for _, skill := range s.GuildSkills {
		s.skills[skill.ID] = skill
	}
}

// MaxLevel implements entities.GuildSkillTable
func (s *SocialSettings) MaxLevel(skillID int) int {
	return s.skills[skillID].MaxLevel
}

// PointCost implements entities.GuildSkillTable
func (s *SocialSettings) PointCost(skillID, level int) int {
	skill, ok := s.skills[skillID]
	if !ok || level < 0 || level >= len(skill.Costs) {
		return 1
	}
	return skill.Costs[level]
}

// Roles returns a copy of the role table new guilds start with
func (s *SocialSettings) Roles() []entities.GuildRole {
	return append([]entities.GuildRole(nil), s.GuildRoles...)
}
