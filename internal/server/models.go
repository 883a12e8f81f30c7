package server

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type ListUsersRequest struct {
}

type ListUsersResponse struct {
	Users []*User
}

type GetUserRequest struct {
	UserID int
}

type GetUserResponse struct {
	User *User
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age"`
}

type CreateUserResponse struct {
	User *User
}

// UpdateUserRequest carries only the fields the caller supplied. A nil Name or
// Email leaves the stored value unchanged; Age distinguishes absent from null.
type UpdateUserRequest struct {
	UserID int         `json:"-"`
	Name   *string     `json:"name"`
	Email  *string     `json:"email"`
	Age    OptionalInt `json:"age"`
}

type UpdateUserResponse struct {
	User *User
}

type DeleteUserRequest struct {
	UserID int
}

type DeleteUserResponse struct {
	User *User
}

type ListPostsRequest struct {
}

type ListPostsResponse struct {
	Posts []*Post
}

type ListUserPostsRequest struct {
	UserID int
}

type ListUserPostsResponse struct {
	Posts []*Post
}

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	UserID  LooseInt `json:"userId"`
}

type CreatePostResponse struct {
	Post *Post
}

type SearchRequest struct {
	Query string
	Type  SearchType
}

type SearchResponse struct {
	Query   string
	Type    SearchType
	Users   []*User
	Posts   []*Post
	Total   int
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age"`
}

// Post is a post as returned by the API. Author is only set when listing
// every post.
type Post struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int    `json:"userId"`
	Author  string `json:"author,omitempty"`
}

type SearchType string

const (
	SearchTypeUsers SearchType = "users"
	SearchTypePosts SearchType = "posts"
)

const UnknownAuthor = "Unknown"

const (
	MinAge = 0
	MaxAge = 120
)

// OptionalInt records whether a JSON field was present at all, and if so
// whether it was null.
type OptionalInt struct {
	Present bool
	Value   *int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "decoding optional int failed")
	}
	o.Value = &v
	return nil
}

func Int(v int) OptionalInt {
	return OptionalInt{Present: true, Value: &v}
}

// UnresolvableID is what a userId decodes to when it was supplied but cannot
// name any user, such as a non-numeric string.
const UnresolvableID = -1

// LooseInt accepts either a JSON number or a numeric string. null and "" decode
// to zero, meaning absent. Any other string that is not a non-zero integer
// decodes to UnresolvableID.
type LooseInt int

func (l *LooseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "decoding string int failed")
		}
		if s == "" {
			*l = 0
			return nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v == 0 {
			*l = UnresolvableID
			return nil
		}
		*l = LooseInt(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "decoding int failed")
	}
	*l = LooseInt(v)
	return nil
}
