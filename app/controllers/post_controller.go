package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"starlog/app/apperr"
	"starlog/app/editor"
	"starlog/app/models"
	"starlog/app/services"
)

// PostController handles HTTP requests for blog posts.
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController.
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// tagsField accepts tag input either as a list or as the editor's free-text
// comma-separated string, normalized to a trimmed list.
type tagsField []string

func (t *tagsField) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return apperr.Validation("tags", "expected list or comma-separated string")
	}
	*t = editor.ParseTags(raw)
	return nil
}

type postRequest struct {
	Title              string             `json:"title"`
	TwoLineDescription string             `json:"twoLineDescription"`
	ThumbnailURL       string             `json:"thumbnailUrl"`
	Tags               tagsField          `json:"tags"`
	ContentSections    models.SectionList `json:"contentSections"`
}

func (req *postRequest) toInput() services.PostInput {
	return services.PostInput{
		Title:              req.Title,
		TwoLineDescription: req.TwoLineDescription,
		ThumbnailURL:       req.ThumbnailURL,
		Tags:               req.Tags,
		ContentSections:    req.ContentSections,
	}
}

// Index lists all approved posts. Public.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListApproved()
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Mine lists the caller's own posts, any status.
func (pc *PostController) Mine(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	posts, err := pc.postService.ListByAuthor(id, id.ID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Pending lists the moderation queue. Admin only.
func (pc *PostController) Pending(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	posts, err := pc.postService.ListPending(id)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show returns a single post with author attribution resolved. Public.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetByID(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create creates a new post for the authenticated caller.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}
	post, err := pc.postService.CreatePost(id, req.toInput())
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Edit replaces the editable fields of a post wholesale.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}
	post, err := pc.postService.EditPost(id, mux.Vars(r)["id"], req.toInput())
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete removes a post and its comments.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if err := pc.postService.DeletePost(id, mux.Vars(r)["id"]); err != nil {
		sendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Approve moves a pending post into the approved set. Admin only, idempotent.
func (pc *PostController) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	post, err := pc.postService.Approve(id, mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}
