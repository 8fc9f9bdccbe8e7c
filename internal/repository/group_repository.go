package repository

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	groupsFile       = "groups.txt"
	groupInvitesFile = "group_invites.txt"
)

// GroupRepository persists the group membership table and the pending
// group-invite queue as flat files.
type GroupRepository interface {
	LoadGroups() (map[string][]string, error)
	LoadGroupInvites() (map[string][]string, error)
	SaveGroups(groups map[string][]string) error
	SaveGroupInvites(pending map[string][]string) error
}

type groupRepository struct {
	dir string
}

func NewGroupRepository(dir string) GroupRepository {
	return &groupRepository{dir: dir}
}

// LoadGroups parses groups.txt (groupId|member1|member2|...). Member order
// on the line is join order and is preserved.
func (r *groupRepository) LoadGroups() (map[string][]string, error) {
	lines, err := readLines(filepath.Join(r.dir, groupsFile))
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]string)
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}
		groups[parts[0]] = parts[1:]
	}
	return groups, nil
}

func (r *groupRepository) SaveGroups(groups map[string][]string) error {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, id+"|"+strings.Join(groups[id], "|"))
	}
	return writeLines(filepath.Join(r.dir, groupsFile), lines)
}

// LoadGroupInvites parses group_invites.txt (invitedId|groupId) into an
// invitedId -> groupIds map.
func (r *groupRepository) LoadGroupInvites() (map[string][]string, error) {
	lines, err := readLines(filepath.Join(r.dir, groupInvitesFile))
	if err != nil {
		return nil, err
	}

	pending := make(map[string][]string)
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) != 2 {
			continue
		}
		pending[parts[0]] = append(pending[parts[0]], parts[1])
	}
	return pending, nil
}

func (r *groupRepository) SaveGroupInvites(pending map[string][]string) error {
	var lines []string
	for invitedId, groupIds := range pending {
		for _, groupId := range groupIds {
			lines = append(lines, invitedId+"|"+groupId)
		}
	}
	sort.Strings(lines)
	return writeLines(filepath.Join(r.dir, groupInvitesFile), lines)
}
