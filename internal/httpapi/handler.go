package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	s "github.com/jlym/postboard/go/internal/server"
	"github.com/jlym/postboard/go/internal/util"
)

type handlerFunc func(h *Handler, w http.ResponseWriter, r *http.Request) error

type route struct {
	method  string
	pattern string
	display string
	handle  handlerFunc
}

var routes = []route{
	{http.MethodGet, "/api/users", "/api/users", (*Handler).listUsers},
	{http.MethodGet, "/api/users/{id}", "/api/users/:id", (*Handler).getUser},
	{http.MethodPost, "/api/users", "/api/users", (*Handler).createUser},
	{http.MethodPut, "/api/users/{id}", "/api/users/:id", (*Handler).updateUser},
	{http.MethodDelete, "/api/users/{id}", "/api/users/:id", (*Handler).deleteUser},
	{http.MethodGet, "/api/posts", "/api/posts", (*Handler).listPosts},
	{http.MethodGet, "/api/users/{id}/posts", "/api/users/:id/posts", (*Handler).listUserPosts},
	{http.MethodPost, "/api/posts", "/api/posts", (*Handler).createPost},
	{http.MethodGet, "/api/search", "/api/search?q=term&type=users", (*Handler).search},
}

// Endpoints lists the served routes, one per line, for startup output.
func Endpoints() []string {
	lines := make([]string, 0, len(routes))
	for _, rt := range routes {
		lines = append(lines, fmt.Sprintf("%-6s %s", rt.method, rt.display))
	}
	return lines
}

// Handler serves the JSON API on top of a s.Server.
type Handler struct {
	server s.Server
	logger *slog.Logger
	clock  util.Clock
	mux    *http.ServeMux
	root   http.Handler
}

var _ http.Handler = &Handler{}

func NewHandler(server s.Server, logger *slog.Logger, clock util.Clock) *Handler {
	h := &Handler{
		server: server,
		logger: logger,
		clock:  clock,
		mux:    http.NewServeMux(),
	}

	for _, rt := range routes {
		h.mux.HandleFunc(rt.method+" "+rt.pattern, h.wrap(rt.handle))
	}
	h.mux.HandleFunc("/", h.wrap(func(_ *Handler, _ http.ResponseWriter, _ *http.Request) error {
		return errEndpointNotFound
	}))
	h.root = h.middleware(h.mux)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

var errEndpointNotFound = s.NewNotFoundError(msgEndpointNotFound)

func (h *Handler) wrap(handle handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handle(h, w, r)
		if err == nil {
			return
		}

		logger := loggerFrom(r.Context(), h.logger)
		kind := s.KindOf(err)
		if kind == s.KindInternal {
			logger.Error("request failed", slog.String("error", fmt.Sprintf("%+v", err)))
		} else {
			logger.Debug("request rejected",
				slog.String("kind", kind.String()),
				slog.String("error", err.Error()))
		}
		writeJSON(w, logger, statusForKind(kind), errorEnvelope(s.PublicMessage(err)))
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.server.ListUsers(r.Context(), &s.ListUsersRequest{})
	if err != nil {
		return err
	}
	h.respond(w, r, http.StatusOK, listEnvelope(resp.Users, len(resp.Users)))
	return nil
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathUserID(r)
	if err != nil {
		return err
	}
	resp, err := h.server.GetUser(r.Context(), &s.GetUserRequest{UserID: userID})
	if err != nil {
		return err
	}
	h.respond(w, r, http.StatusOK, dataEnvelope(resp.User))
	return nil
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) error {
	var request s.CreateUserRequest
	if err := decodeBody(r, &request); err != nil {
		return err
	}
	resp, err := h.server.CreateUser(r.Context(), &request)
	if err != nil {
		return err
	}
	h.respond(w, r, http.StatusCreated, dataEnvelope(resp.User))
	return nil
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathUserID(r)
	if err != nil {
		return err
	}
	var request s.UpdateUserRequest
	if err := decodeBody(r, &request); err != nil {
		return err
	}
	request.UserID = userID

	resp, err := h.server.UpdateUser(r.Context(), &request)
	if err != nil {
		return err
	}
	h.respond(w, r, http.StatusOK, dataEnvelope(resp.User))
	return nil
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathUserID(r)
	if err != nil {
		return err
	}
	resp, err := h.server.DeleteUser(r.Context(), &s.DeleteUserRequest{UserID: userID})
	if err != nil {
		return err
	}
	h.respond(w, r, http.StatusOK, dataEnvelope(resp.User))
	return nil
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.server.ListPosts(r.Context(), &s.ListPostsRequest{})
	if err != nil {
		return err
	}
	h.respond(w, r, http.StatusOK, listEnvelope(resp.Posts, len(resp.Posts)))
	return nil
}

func (h *Handler) listUserPosts(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathUserID(r)
	if err != nil {
		return err
	}
	resp, err := h.server.ListUserPosts(r.Context(), &s.ListUserPostsRequest{UserID: userID})
	if err != nil {
		return err
	}
	h.respond(w, r, http.StatusOK, listEnvelope(resp.Posts, len(resp.Posts)))
	return nil
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) error {
	var request s.CreatePostRequest
	if err := decodeBody(r, &request); err != nil {
		return err
	}
	resp, err := h.server.CreatePost(r.Context(), &request)
	if err != nil {
		return err
	}
	h.respond(w, r, http.StatusCreated, dataEnvelope(resp.Post))
	return nil
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	resp, err := h.server.Search(r.Context(), &s.SearchRequest{
		Query: query.Get("q"),
		Type:  s.SearchType(query.Get("type")),
	})
	if err != nil {
		return err
	}

	var data any = resp.Users
	if resp.Type == s.SearchTypePosts {
		data = resp.Posts
	}
	envelope := listEnvelope(data, resp.Total)
	envelope.Query = resp.Query
	envelope.Type = string(resp.Type)
	h.respond(w, r, http.StatusOK, envelope)
	return nil
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, body *Envelope) {
	writeJSON(w, loggerFrom(r.Context(), h.logger), status, body)
}

// pathUserID parses the {id} segment. Anything that is not an integer cannot
// name a user.
func pathUserID(r *http.Request) (int, error) {
	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, s.NewNotFoundError(s.MsgUserNotFound)
	}
	return userID, nil
}

// decodeBody treats an empty body as an empty object.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errors.Wrap(s.NewValidationError(msgInvalidBody), err.Error())
}
