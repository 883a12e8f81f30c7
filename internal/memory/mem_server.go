package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	s "github.com/jlym/postboard/go/internal/server"
	"github.com/jlym/postboard/go/internal/storage"
)

// MemServer keeps users and posts in process memory. A single lock covers both
// stores so that id generation with insert, and delete with cascade, are atomic.
type MemServer struct {
	lock  sync.RWMutex
	users *UserStore
	posts *PostStore
}

// Enforce that MemServer implements s.Server interface.
var _ s.Server = &MemServer{}

// NewMemServer returns a server loaded with seed. A nil seed starts empty.
func NewMemServer(seed *Seed) (*MemServer, error) {
	users := NewUserStore()
	posts := NewPostStore(users)

	if seed != nil {
		if err := seed.Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid seed")
		}
		seed.apply(users, posts)
	}

	return &MemServer{
		users: users,
		posts: posts,
	}, nil
}

func (m *MemServer) ListUsers(_ context.Context, _ *s.ListUsersRequest) (*s.ListUsersResponse, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return &s.ListUsersResponse{
		Users: toUsers(m.users.List()),
	}, nil
}

func (m *MemServer) GetUser(_ context.Context, request *s.GetUserRequest) (*s.GetUserResponse, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	user, err := m.users.Get(request.UserID)
	if err != nil {
		return nil, err
	}
	return &s.GetUserResponse{
		User: toUser(user),
	}, nil
}

func (m *MemServer) CreateUser(_ context.Context, request *s.CreateUserRequest) (*s.CreateUserResponse, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	user, err := m.users.Create(request.Name, request.Email, request.Age)
	if err != nil {
		return nil, err
	}
	return &s.CreateUserResponse{
		User: toUser(user),
	}, nil
}

func (m *MemServer) UpdateUser(_ context.Context, request *s.UpdateUserRequest) (*s.UpdateUserResponse, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	user, err := m.users.Update(request)
	if err != nil {
		return nil, err
	}
	return &s.UpdateUserResponse{
		User: toUser(user),
	}, nil
}

func (m *MemServer) DeleteUser(_ context.Context, request *s.DeleteUserRequest) (*s.DeleteUserResponse, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	user, err := m.users.Delete(request.UserID)
	if err != nil {
		return nil, err
	}
	m.posts.CascadeDeleteByUser(request.UserID)

	return &s.DeleteUserResponse{
		User: toUser(user),
	}, nil
}

func (m *MemServer) ListPosts(_ context.Context, _ *s.ListPostsRequest) (*s.ListPostsResponse, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	stored := m.posts.List()
	posts := make([]*s.Post, 0, len(stored))
	for _, post := range stored {
		p := toPost(post)
		p.Author = m.posts.Author(post)
		posts = append(posts, p)
	}
	return &s.ListPostsResponse{
		Posts: posts,
	}, nil
}

func (m *MemServer) ListUserPosts(_ context.Context, request *s.ListUserPostsRequest) (*s.ListUserPostsResponse, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	posts, err := m.posts.ListByUser(request.UserID)
	if err != nil {
		return nil, err
	}
	return &s.ListUserPostsResponse{
		Posts: toPosts(posts),
	}, nil
}

func (m *MemServer) CreatePost(_ context.Context, request *s.CreatePostRequest) (*s.CreatePostResponse, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	post, err := m.posts.Create(request.Title, request.Content, int(request.UserID))
	if err != nil {
		return nil, err
	}
	return &s.CreatePostResponse{
		Post: toPost(post),
	}, nil
}

// Search matches case-insensitively. An unrecognized type matches nothing.
func (m *MemServer) Search(_ context.Context, request *s.SearchRequest) (*s.SearchResponse, error) {
	if request.Query == "" {
		return nil, s.NewValidationError(s.MsgSearchQueryRequired)
	}
	searchType := request.Type
	if searchType == "" {
		searchType = s.SearchTypeUsers
	}

	m.lock.RLock()
	defer m.lock.RUnlock()

	response := &s.SearchResponse{
		Query: request.Query,
		Type:  searchType,
		Users: []*s.User{},
		Posts: []*s.Post{},
	}
	q := strings.ToLower(request.Query)

	switch searchType {
	case s.SearchTypeUsers:
		for _, user := range m.users.List() {
			if containsFold(user.Name, q) || containsFold(user.Email, q) {
				response.Users = append(response.Users, toUser(user))
			}
		}
		response.Total = len(response.Users)
	case s.SearchTypePosts:
		for _, post := range m.posts.List() {
			if containsFold(post.Title, q) || containsFold(post.Content, q) {
				response.Posts = append(response.Posts, toPost(post))
			}
		}
		response.Total = len(response.Posts)
	}

	return response, nil
}

// containsFold expects lowerQuery to be lowercased already.
func containsFold(field, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(field), lowerQuery)
}

func toUser(user *storage.User) *s.User {
	c := user.Clone()
	return &s.User{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Age:   c.Age,
	}
}

func toUsers(users []*storage.User) []*s.User {
	result := make([]*s.User, 0, len(users))
	for _, user := range users {
		result = append(result, toUser(user))
	}
	return result
}

func toPost(post *storage.Post) *s.Post {
	return &s.Post{
		ID:      post.ID,
		Title:   post.Title,
		Content: post.Content,
		UserID:  post.UserID,
	}
}

func toPosts(posts []*storage.Post) []*s.Post {
	result := make([]*s.Post, 0, len(posts))
	for _, post := range posts {
		result = append(result, toPost(post))
	}
	return result
}
