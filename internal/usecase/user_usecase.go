package usecase

import (
	"errors"
	"log"
	"sync"

	"lanchat/internal/credentials"
	"lanchat/internal/entity"
	"lanchat/internal/repository"
)

var (
	ErrDuplicateId        = errors.New("id already exists")
	ErrInvalidCredentials = errors.New("invalid id or password")
	ErrInvalidRequest     = errors.New("unknown user or self request")
	ErrAlreadyFriends     = errors.New("users are already friends")
	ErrRequestPending     = errors.New("friend request already pending")
	ErrNoSuchRequest      = errors.New("no such friend request")
	ErrNotFriends         = errors.New("users are not friends")
)

// UserUsecase is the user directory: identity, authentication, the
// friendship graph and the pending friend-request queue. All state lives
// in memory behind one lock; every mutation is persisted as a side effect.
type UserUsecase interface {
	Register(id, username, password string) error
	Authenticate(id, password string) (entity.User, error)
	SendFriendRequest(senderId, receiverId string) error
	AcceptFriendRequest(receiverId, senderId string) error
	RejectFriendRequest(receiverId, senderId string) error
	DeleteFriend(userId1, userId2 string) error
	AreFriends(userId1, userId2 string) bool
	GetFriends(userId string) []string
	GetPendingRequests(userId string) []string
	GetUser(id string) (entity.User, bool)
	SetOnline(id string, online bool)
}

type userUsecase struct {
	mu          sync.Mutex
	users       map[string]entity.User
	friendships map[string][]string // userId -> friend ids, kept bidirectional
	pending     map[string][]string // receiverId -> sender ids, arrival order

	userRepo repository.UserRepository
	checker  credentials.Checker
}

func NewUserUsecase(userRepo repository.UserRepository, checker credentials.Checker) (UserUsecase, error) {
	users, err := userRepo.LoadUsers()
	if err != nil {
		return nil, err
	}
	friendships, err := userRepo.LoadFriendships()
	if err != nil {
		return nil, err
	}
	pending, err := userRepo.LoadFriendRequests()
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d users, %d friendship entries, %d pending request queues",
		len(users), len(friendships), len(pending))

	return &userUsecase{
		users:       users,
		friendships: friendships,
		pending:     pending,
		userRepo:    userRepo,
		checker:     checker,
	}, nil
}

func (u *userUsecase) Register(id, username, password string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.users[id]; exists {
		return ErrDuplicateId
	}
	stored, err := u.checker.Store(password)
	if err != nil {
		return err
	}
	u.users[id] = entity.User{Id: id, Username: username, Password: stored}
	u.persistUsers()
	return nil
}

func (u *userUsecase) Authenticate(id, password string) (entity.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, exists := u.users[id]
	if !exists {
		return entity.User{}, ErrInvalidCredentials
	}
	if err := u.checker.Compare(user.Password, password); err != nil {
		return entity.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// SendFriendRequest queues a request from sender to receiver. Only the
// forward direction is checked for duplicates; a pending request the
// other way round does not block this one.
func (u *userUsecase) SendFriendRequest(senderId, receiverId string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.users[senderId]; !ok {
		return ErrInvalidRequest
	}
	if _, ok := u.users[receiverId]; !ok {
		return ErrInvalidRequest
	}
	if senderId == receiverId {
		return ErrInvalidRequest
	}
	if u.areFriendsLocked(senderId, receiverId) {
		return ErrAlreadyFriends
	}
	if contains(u.pending[receiverId], senderId) {
		return ErrRequestPending
	}

	u.pending[receiverId] = append(u.pending[receiverId], senderId)
	u.persistFriendRequests()
	return nil
}

func (u *userUsecase) AcceptFriendRequest(receiverId, senderId string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.removePendingLocked(receiverId, senderId) {
		return ErrNoSuchRequest
	}
	u.friendships[receiverId] = append(u.friendships[receiverId], senderId)
	u.friendships[senderId] = append(u.friendships[senderId], receiverId)
	u.persistFriendships()
	u.persistFriendRequests()
	return nil
}

func (u *userUsecase) RejectFriendRequest(receiverId, senderId string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.removePendingLocked(receiverId, senderId) {
		return ErrNoSuchRequest
	}
	u.persistFriendRequests()
	return nil
}

// DeleteFriend removes the edge in both directions. If either direction
// is missing nothing is changed.
func (u *userUsecase) DeleteFriend(userId1, userId2 string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !contains(u.friendships[userId1], userId2) || !contains(u.friendships[userId2], userId1) {
		return ErrNotFriends
	}

	u.friendships[userId1] = remove(u.friendships[userId1], userId2)
	u.friendships[userId2] = remove(u.friendships[userId2], userId1)
	if len(u.friendships[userId1]) == 0 {
		delete(u.friendships, userId1)
	}
	if len(u.friendships[userId2]) == 0 {
		delete(u.friendships, userId2)
	}
	u.persistFriendships()
	return nil
}

func (u *userUsecase) AreFriends(userId1, userId2 string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.areFriendsLocked(userId1, userId2)
}

func (u *userUsecase) GetFriends(userId string) []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.friendships[userId]...)
}

func (u *userUsecase) GetPendingRequests(userId string) []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.pending[userId]...)
}

func (u *userUsecase) GetUser(id string) (entity.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.users[id]
	return user, ok
}

func (u *userUsecase) SetOnline(id string, online bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if user, ok := u.users[id]; ok {
		user.IsOnline = online
		u.users[id] = user
	}
}

func (u *userUsecase) areFriendsLocked(userId1, userId2 string) bool {
	return contains(u.friendships[userId1], userId2)
}

func (u *userUsecase) removePendingLocked(receiverId, senderId string) bool {
	senders := u.pending[receiverId]
	if !contains(senders, senderId) {
		return false
	}
	senders = remove(senders, senderId)
	if len(senders) == 0 {
		delete(u.pending, receiverId)
	} else {
		u.pending[receiverId] = senders
	}
	return true
}

// Persistence failures are logged and the in-memory state keeps the
// change: the live session wins over durability here.

func (u *userUsecase) persistUsers() {
	if err := u.userRepo.SaveUsers(u.users); err != nil {
		log.Printf("save users: %v", err)
	}
}

func (u *userUsecase) persistFriendships() {
	if err := u.userRepo.SaveFriendships(u.friendships); err != nil {
		log.Printf("save friendships: %v", err)
	}
}

func (u *userUsecase) persistFriendRequests() {
	if err := u.userRepo.SaveFriendRequests(u.pending); err != nil {
		log.Printf("save friend requests: %v", err)
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
