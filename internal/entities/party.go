package entities

// Party is a group of characters sharing exp and loot. Members keep their
// insertion order.
type Party struct {
	ID        int               `json:"id"`
	ShareExp  bool              `json:"share_exp"`
	ShareItem bool              `json:"share_item"`
	LeaderID  string            `json:"leader_id"`
	Members   []SocialCharacter `json:"members,omitempty"`
}

// NewParty creates an empty party
func NewParty(id int, shareExp, shareItem bool, leaderID string) *Party {
	return &Party{
		ID:        id,
		ShareExp:  shareExp,
		ShareItem: shareItem,
		LeaderID:  leaderID,
	}
}

// Setting replaces the share flags
func (p *Party) Setting(shareExp, shareItem bool) {
	p.ShareExp = shareExp
	p.ShareItem = shareItem
}

// SetLeader replaces the leader id without touching membership
func (p *Party) SetLeader(characterID string) {
	p.LeaderID = characterID
}

// IsLeader reports whether the character leads the party
func (p *Party) IsLeader(characterID string) bool {
	return p.LeaderID == characterID
}

// AddMember appends a member copy, or refreshes the copy in place when the
// character is already a member.
func (p *Party) AddMember(member SocialCharacter) {
	member.PartyID = p.ID
	for i := range p.Members {
		if p.Members[i].ID == member.ID {
			p.Members[i] = member
			return
		}
	}
	p.Members = append(p.Members, member)
}

// RemoveMember drops a member and reports whether it was present
func (p *Party) RemoveMember(characterID string) bool {
	for i := range p.Members {
		if p.Members[i].ID == characterID {
			p.Members = append(p.Members[:i], p.Members[i+1:]...)
			if len(p.Members) == 0 {
				p.Members = nil
			}
			return true
		}
	}
	return false
}

// Member returns the embedded copy for a character
func (p *Party) Member(characterID string) (SocialCharacter, bool) {
	for _, m := range p.Members {
		if m.ID == characterID {
			return m, true
		}
	}
	return SocialCharacter{}, false
}

// UpdateMember overwrites the embedded copy when the character is a member,
// keeping the party id
func (p *Party) UpdateMember(member SocialCharacter) bool {
	member.PartyID = p.ID
	for i := range p.Members {
		if p.Members[i].ID == member.ID {
			p.Members[i] = member
			return true
		}
	}
	return false
}

// MemberIDs lists member character ids in insertion order
func (p *Party) MemberIDs() []string {
	ids := make([]string, len(p.Members))
	for i, m := range p.Members {
		ids[i] = m.ID
	}
	return ids
}

// Clone returns a deep copy
func (p *Party) Clone() *Party {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Members != nil {
		clone.Members = append([]SocialCharacter(nil), p.Members...)
	}
	return &clone
}
