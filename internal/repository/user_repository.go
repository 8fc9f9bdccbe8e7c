package repository

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"lanchat/internal/entity"
)

const (
	usersFile          = "users.txt"
	friendshipsFile    = "friendships.txt"
	friendRequestsFile = "friend_requests.txt"
)

// UserRepository persists the user table, the friendship graph and the
// pending friend-request queue as flat files. Save methods replace the
// whole backing file with the given snapshot.
type UserRepository interface {
	LoadUsers() (map[string]entity.User, error)
	LoadFriendships() (map[string][]string, error)
	LoadFriendRequests() (map[string][]string, error)
	SaveUsers(users map[string]entity.User) error
	SaveFriendships(friendships map[string][]string) error
	SaveFriendRequests(pending map[string][]string) error
}

type userRepository struct {
	dir string
}

func NewUserRepository(dir string) UserRepository {
	return &userRepository{dir: dir}
}

// LoadUsers parses users.txt (id|username|password). Malformed lines are
// skipped rather than treated as fatal.
func (r *userRepository) LoadUsers() (map[string]entity.User, error) {
	lines, err := readLines(filepath.Join(r.dir, usersFile))
	if err != nil {
		return nil, err
	}

	users := make(map[string]entity.User)
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}
		users[parts[0]] = entity.User{Id: parts[0], Username: parts[1], Password: parts[2]}
	}
	return users, nil
}

func (r *userRepository) SaveUsers(users map[string]entity.User) error {
	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		u := users[id]
		lines = append(lines, fmt.Sprintf("%s|%s|%s", u.Id, u.Username, u.Password))
	}
	return writeLines(filepath.Join(r.dir, usersFile), lines)
}

// LoadFriendships parses friendships.txt (a|b, one line per unordered
// pair) into a bidirectional adjacency map.
func (r *userRepository) LoadFriendships() (map[string][]string, error) {
	lines, err := readLines(filepath.Join(r.dir, friendshipsFile))
	if err != nil {
		return nil, err
	}

	friendships := make(map[string][]string)
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) != 2 {
			continue
		}
		friendships[parts[0]] = append(friendships[parts[0]], parts[1])
		friendships[parts[1]] = append(friendships[parts[1]], parts[0])
	}
	return friendships, nil
}

// SaveFriendships writes each pair once, lexicographically smaller id
// first, so the bidirectional in-memory graph is not duplicated on disk.
func (r *userRepository) SaveFriendships(friendships map[string][]string) error {
	var lines []string
	for a, friends := range friendships {
		for _, b := range friends {
			if a < b {
				lines = append(lines, a+"|"+b)
			}
		}
	}
	sort.Strings(lines)
	return writeLines(filepath.Join(r.dir, friendshipsFile), lines)
}

// LoadFriendRequests parses friend_requests.txt (senderId|receiverId) into
// a receiverId -> senderIds map.
func (r *userRepository) LoadFriendRequests() (map[string][]string, error) {
	lines, err := readLines(filepath.Join(r.dir, friendRequestsFile))
	if err != nil {
		return nil, err
	}

	pending := make(map[string][]string)
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) != 2 {
			continue
		}
		pending[parts[1]] = append(pending[parts[1]], parts[0])
	}
	return pending, nil
}

func (r *userRepository) SaveFriendRequests(pending map[string][]string) error {
	var lines []string
	for receiverId, senderIds := range pending {
		for _, senderId := range senderIds {
			lines = append(lines, senderId+"|"+receiverId)
		}
	}
	sort.Strings(lines)
	return writeLines(filepath.Join(r.dir, friendRequestsFile), lines)
}
