package server

import "context"

// Server is the users/posts API. Implementations report failures as *Error
// values so that callers can classify them with KindOf.
type Server interface {
	ListUsers(ctx context.Context, request *ListUsersRequest) (*ListUsersResponse, error)
	GetUser(ctx context.Context, request *GetUserRequest) (*GetUserResponse, error)
	CreateUser(ctx context.Context, request *CreateUserRequest) (*CreateUserResponse, error)
	UpdateUser(ctx context.Context, request *UpdateUserRequest) (*UpdateUserResponse, error)
	DeleteUser(ctx context.Context, request *DeleteUserRequest) (*DeleteUserResponse, error)

	ListPosts(ctx context.Context, request *ListPostsRequest) (*ListPostsResponse, error)
	ListUserPosts(ctx context.Context, request *ListUserPostsRequest) (*ListUserPostsResponse, error)
	CreatePost(ctx context.Context, request *CreatePostRequest) (*CreatePostResponse, error)

	Search(ctx context.Context, request *SearchRequest) (*SearchResponse, error)
}
