package memory

import (
	s "github.com/jlym/postboard/go/internal/server"
	"github.com/jlym/postboard/go/internal/storage"
)

// UserStore holds users in insertion order. It is not safe for concurrent use;
// MemServer serializes access to it.
type UserStore struct {
	users []*storage.User
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (us *UserStore) List() []*storage.User {
	return us.users
}

func (us *UserStore) Len() int {
	return len(us.users)
}

func (us *UserStore) Get(userID int) (*storage.User, error) {
	i := us.indexOf(userID)
	if i < 0 {
		return nil, s.NewNotFoundError(s.MsgUserNotFound)
	}
	return us.users[i], nil
}

func (us *UserStore) Exists(userID int) bool {
	return us.indexOf(userID) >= 0
}

func (us *UserStore) Create(name, email string, age *int) (*storage.User, error) {
	if name == "" || email == "" {
		return nil, s.NewValidationError(s.MsgNameEmailRequired)
	}
	if !validAge(age) {
		return nil, s.NewValidationError(s.MsgAgeOutOfRange)
	}
	if us.emailTaken(email, 0) {
		return nil, s.NewConflictError(s.MsgEmailExists)
	}

	user := &storage.User{
		ID:    us.nextID(),
		Name:  name,
		Email: email,
		Age:   copyInt(age),
	}
	us.users = append(us.users, user)
	return user, nil
}

// Update merges the supplied fields onto the stored user. The id never changes.
func (us *UserStore) Update(request *s.UpdateUserRequest) (*storage.User, error) {
	i := us.indexOf(request.UserID)
	if i < 0 {
		return nil, s.NewNotFoundError(s.MsgUserNotFound)
	}

	if request.Email != nil && *request.Email != "" && us.emailTaken(*request.Email, request.UserID) {
		return nil, s.NewConflictError(s.MsgEmailExists)
	}
	if (request.Name != nil && *request.Name == "") || (request.Email != nil && *request.Email == "") {
		return nil, s.NewValidationError(s.MsgNameEmailEmpty)
	}
	if request.Age.Present && !validAge(request.Age.Value) {
		return nil, s.NewValidationError(s.MsgAgeOutOfRange)
	}

	user := us.users[i]
	if request.Name != nil {
		user.Name = *request.Name
	}
	if request.Email != nil {
		user.Email = *request.Email
	}
	if request.Age.Present {
		user.Age = copyInt(request.Age.Value)
	}
	return user, nil
}

// Delete removes the user. Callers are responsible for cascading to posts.
func (us *UserStore) Delete(userID int) (*storage.User, error) {
	i := us.indexOf(userID)
	if i < 0 {
		return nil, s.NewNotFoundError(s.MsgUserNotFound)
	}

	user := us.users[i]
	us.users = append(us.users[:i], us.users[i+1:]...)
	return user, nil
}

func (us *UserStore) insert(user *storage.User) {
	us.users = append(us.users, user)
}

func (us *UserStore) indexOf(userID int) int {
	for i, user := range us.users {
		if user.ID == userID {
			return i
		}
	}
	return -1
}

// emailTaken reports whether a user other than exceptID already uses email.
// Comparison is exact and case-sensitive.
func (us *UserStore) emailTaken(email string, exceptID int) bool {
	for _, user := range us.users {
		if user.Email == email && user.ID != exceptID {
			return true
		}
	}
	return false
}

func (us *UserStore) nextID() int {
	maxID := 0
	for _, user := range us.users {
		if user.ID > maxID {
			maxID = user.ID
		}
	}
	return maxID + 1
}

func validAge(age *int) bool {
	return age == nil || (*age >= s.MinAge && *age <= s.MaxAge)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
