// Package httpapi is the thin HTTP collaborator surface over the core
// services: route wiring, bearer-token guard and the uniform response
// envelope. All business rules live in the service packages.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/microblog/internal/common"
	"github.com/dmitrijs2005/microblog/internal/logging"
	"github.com/dmitrijs2005/microblog/internal/server/auth"
	"github.com/dmitrijs2005/microblog/internal/server/images"
	"github.com/dmitrijs2005/microblog/internal/server/posts"
	"github.com/dmitrijs2005/microblog/internal/server/users"
)

// 5 MiB is plenty for a profile picture upload.
const maxUploadBytes = 5 << 20

// UserService is the slice of the credential store the HTTP layer consumes.
type UserService interface {
	Register(ctx context.Context, req *users.RegisterRequest) (*users.User, error)
	VerifyCredentials(ctx context.Context, email, password string) (*users.User, error)
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetProfile(ctx context.Context, id string) (*users.Profile, error)
}

// PostService is the slice of the content store the HTTP layer consumes.
type PostService interface {
	Create(ctx context.Context, authorID, content string) (*posts.Post, error)
	ListAll(ctx context.Context, ascending bool) ([]*posts.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*posts.Post, error)
}

type API struct {
	users  UserService
	posts  PostService
	images images.Store
	secret []byte
	logger logging.Logger
}

func NewAPI(us UserService, ps PostService, is images.Store, secretKey string, logger logging.Logger) *API {
	return &API{
		users:  us,
		posts:  ps,
		images: is,
		secret: []byte(secretKey),
		logger: logger.With("module", "httpapi"),
	}
}

// userDetails is the user payload returned by login and validateToken.
type userDetails struct {
	ID         string   `json:"_id,omitempty"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	ProfilePic string   `json:"profilePic"`
	Tasks      []string `json:"tasks"`
	AuthToken  string   `json:"authToken,omitempty"`
}

func details(u *users.User) userDetails {
	tasks := u.Tasks
	if tasks == nil {
		tasks = []string{}
	}
	return userDetails{
		Name:       u.Name,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		Tasks:      tasks,
	}
}

// Register handles POST /register. The body is a multipart form carrying the
// profile fields and an optional profilePic file, which is externalized
// through the image store before the user record is persisted.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid form data", "")
		return
	}

	req := &users.RegisterRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Bio:      r.FormValue("bio"),
		Tasks:    r.MultipartForm.Value["tasks"],
	}

	file, header, err := r.FormFile("profilePic")
	if err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "Invalid form data", "")
			return
		}

		url, err := a.images.Store(ctx, data, header.Header.Get("Content-Type"))
		if err != nil {
			a.logger.Error(ctx, "profile picture upload failed", "err", err)
			writeFailure(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
			return
		}
		req.ProfilePic = url
	}

	if _, err := a.users.Register(ctx, req); err != nil {
		writeError(w, err)
		return
	}

	a.logger.Info(ctx, "user registered", "email", req.Email)
	writeJSON(w, http.StatusCreated, messageResponse{Status: statusSuccess, Msg: "Registration successful"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /login: verifies credentials and issues a bearer token.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	user, err := a.users.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeFailure(w, http.StatusUnauthorized, "User does not exist", "")
			return
		}
		writeError(w, err)
		return
	}

	token, err := auth.GenerateToken(user.Email, a.secret)
	if err != nil {
		a.logger.Error(ctx, "token signing failed", "err", err)
		writeFailure(w, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}

	d := details(user)
	d.AuthToken = token

	a.logger.Info(ctx, "user logged in", "email", user.Email)
	writeJSON(w, http.StatusOK, dataResponse{Status: statusSuccess, Data: d})
}

type validateTokenRequest struct {
	AuthToken string `json:"authToken"`
}

// ValidateToken handles POST /validateToken: re-verifies a previously issued
// token and returns the matching user's details.
func (a *API) ValidateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req validateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	email, err := auth.GetEmailFromToken(req.AuthToken, a.secret)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Invalid token", "")
		return
	}

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeFailure(w, http.StatusUnauthorized, "User does not exist", "")
			return
		}
		writeError(w, err)
		return
	}

	d := details(user)
	d.ID = user.ID

	writeJSON(w, http.StatusOK, dataResponse{Status: statusSuccess, Data: d})
}

type createPostRequest struct {
	Content string `json:"content"`
}

// CreatePost handles POST /posts. RequireUser has already resolved the acting
// identity; the post is attributed to it.
func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	post, err := a.posts.Create(ctx, user.ID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	a.logger.Info(ctx, "post created", "author", user.ID, "post", post.ID)
	writeJSON(w, http.StatusCreated, postResponse{Status: statusSuccess, Post: post})
}

// ListPosts handles GET /posts. The default listing is most-recent-first;
// ?order=asc selects chronological order for a chat-like appended feed.
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	ascending := r.URL.Query().Get("order") == "asc"

	list, err := a.posts.ListAll(r.Context(), ascending)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postsResponse{Status: statusSuccess, Posts: list})
}

// ListUserPosts handles GET /users/{id}/posts.
func (a *API) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	list, err := a.posts.ListByAuthor(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postsResponse{Status: statusSuccess, Posts: list})
}

// GetUser handles GET /users/{id}: the restricted public profile view.
func (a *API) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := a.users.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Status: statusSuccess, User: profile})
}

// Health handles GET /health.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Status: statusSuccess, Msg: "Service is healthy"})
}
