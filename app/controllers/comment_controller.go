package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"starlog/app/services"
)

// CommentController handles HTTP requests for comments.
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController.
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

type commentRequest struct {
	Username        string `json:"username"`
	Content         string `json:"content"`
	ParentCommentID string `json:"parentComment"`
}

// Index lists all comments for a post, newest first. Public.
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListForPost(mux.Vars(r)["postId"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create adds a comment to a post, optionally as a reply to another comment.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	comment, err := cc.commentService.AddComment(mux.Vars(r)["postId"], req.Username, req.Content, req.ParentCommentID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Delete removes a comment. Admin only.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if err := cc.commentService.DeleteComment(id, mux.Vars(r)["id"]); err != nil {
		sendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
