package apiclienttest

import (
	"maps"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/typewell/typewell/shared/domain"
	internal_errors "github.com/typewell/typewell/shared/errors"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user     domain.User
	passHash []byte
}

// Store is a goroutine-safe in-memory account table.
type Store struct {
	mu       sync.RWMutex
	accounts map[domain.UserId]*account
	bcost    int
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[domain.UserId]*account),
		bcost:    bcrypt.MinCost, // fake data, keep tests fast
	}
}

var (
	errNotFound     = &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	errBadCreds     = &internal_errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	errEmailTaken   = &internal_errors.ErrorWithStatusCode{Message: "Email already in use", StatusCode: http.StatusConflict}
	errNameTaken    = &internal_errors.ErrorWithStatusCode{Message: "Username already taken", StatusCode: http.StatusConflict}
	errInvalidQuery = &internal_errors.ErrorWithStatusCode{Message: "Invalid search query", StatusCode: http.StatusBadRequest}
)

func (s *Store) Create(username domain.Username, email domain.Email, password domain.Password) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcost)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUniqueLocked("", username, email); err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		Id:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Stats:     domain.Stats{History: []domain.SessionResult{}},
		Badges:    domain.Badges{},
		Settings:  domain.Settings{},
		CreatedAt: time.Now().UTC(),
	}
	s.accounts[u.Id] = &account{user: u, passHash: hash}
	return u, nil
}

// Authenticate returns the account matching the credentials.
func (s *Store) Authenticate(email domain.Email, password domain.Password) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.user.Email, email) {
			if bcrypt.CompareHashAndPassword(a.passHash, []byte(password)) != nil {
				return domain.User{}, errBadCreds
			}
			return a.user, nil
		}
	}
	return domain.User{}, errBadCreds
}

func (s *Store) Get(id domain.UserId) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.User{}, errNotFound
	}
	return a.user, nil
}

// Update applies f to the stored user under the write lock.
func (s *Store) Update(id domain.UserId, f func(u *domain.User) error) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.User{}, errNotFound
	}
	u := a.user
	u.Settings = maps.Clone(a.user.Settings)
	if err := f(&u); err != nil {
		return domain.User{}, err
	}
	if err := s.checkUniqueLocked(id, u.Username, u.Email); err != nil {
		return domain.User{}, err
	}
	a.user = u
	return u, nil
}

func (s *Store) Delete(id domain.UserId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return errNotFound
	}
	delete(s.accounts, id)
	return nil
}

// Search matches usernames against pattern, case-insensitively, the way the
// real API feeds the query into a regex.
func (s *Store) Search(pattern string) ([]domain.PublicUser, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errInvalidQuery
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := []domain.PublicUser{}
	for _, a := range s.accounts {
		if re.MatchString(a.user.Username) {
			found = append(found, a.user.Public())
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Username < found[j].Username })
	return found, nil
}

func (s *Store) checkUniqueLocked(self domain.UserId, username domain.Username, email domain.Email) error {
	for id, a := range s.accounts {
		if id == self {
			continue
		}
		if strings.EqualFold(a.user.Email, email) {
			return errEmailTaken
		}
		if strings.EqualFold(a.user.Username, username) {
			return errNameTaken
		}
	}
	return nil
}
