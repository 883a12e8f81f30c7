package memory

import (
	s "github.com/jlym/postboard/go/internal/server"
	"github.com/jlym/postboard/go/internal/storage"
)

// PostStore holds posts in insertion order and checks authors against users.
// Like UserStore it relies on MemServer for locking.
type PostStore struct {
	users *UserStore
	posts []*storage.Post
}

func NewPostStore(users *UserStore) *PostStore {
	return &PostStore{users: users}
}

func (ps *PostStore) List() []*storage.Post {
	return ps.posts
}

func (ps *PostStore) Len() int {
	return len(ps.posts)
}

// Author returns the name of the post's user, or s.UnknownAuthor if that user
// is gone.
func (ps *PostStore) Author(post *storage.Post) string {
	user, err := ps.users.Get(post.UserID)
	if err != nil {
		return s.UnknownAuthor
	}
	return user.Name
}

func (ps *PostStore) ListByUser(userID int) ([]*storage.Post, error) {
	if !ps.users.Exists(userID) {
		return nil, s.NewNotFoundError(s.MsgUserNotFound)
	}

	posts := []*storage.Post{}
	for _, post := range ps.posts {
		if post.UserID == userID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// Create validates presence of every field before checking that the author
// exists. Only a zero userID is missing; any other id that names no user,
// negative ones included, is not found.
func (ps *PostStore) Create(title, content string, userID int) (*storage.Post, error) {
	if title == "" || content == "" || userID == 0 {
		return nil, s.NewValidationError(s.MsgPostFieldsRequired)
	}
	if !ps.users.Exists(userID) {
		return nil, s.NewNotFoundError(s.MsgUserNotFound)
	}

	post := &storage.Post{
		ID:      ps.nextID(),
		Title:   title,
		Content: content,
		UserID:  userID,
	}
	ps.posts = append(ps.posts, post)
	return post, nil
}

// CascadeDeleteByUser removes every post written by userID and returns how many
// were removed.
func (ps *PostStore) CascadeDeleteByUser(userID int) int {
	kept := ps.posts[:0]
	removed := 0
	for _, post := range ps.posts {
		if post.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, post)
	}
	for i := len(kept); i < len(ps.posts); i++ {
		ps.posts[i] = nil
	}
	ps.posts = kept
	return removed
}

func (ps *PostStore) insert(post *storage.Post) {
	ps.posts = append(ps.posts, post)
}

func (ps *PostStore) nextID() int {
	maxID := 0
	for _, post := range ps.posts {
		if post.ID > maxID {
			maxID = post.ID
		}
	}
	return maxID + 1
}
