package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sushihentaime/cmsblog/internal/cmsservice"
	"github.com/sushihentaime/cmsblog/internal/commentservice"
	"github.com/sushihentaime/cmsblog/internal/common"
)

// commentSubmitter is implemented by the in-process relay and by the HTTP
// client of a remote relay.
type commentSubmitter interface {
	SubmitComment(ctx context.Context, req *commentservice.CommentRequest) (json.RawMessage, error)
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	var input commentservice.CommentRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// Forward the comment to the CMS
	data, err := app.commentService.SubmitComment(r.Context(), &input)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.upstreamErrorResponse(w, r, err)
		}
		return
	}

	app.writeRawJSON(w, http.StatusOK, data)
}

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		edges []cmsservice.PostEdge
		err   error
	)

	if category := r.URL.Query().Get("category"); category != "" {
		edges, err = app.cmsService.GetCategoryPosts(r.Context(), category)
	} else {
		edges, err = app.cmsService.GetPosts(r.Context())
	}
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": edges}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) showPostHandler(w http.ResponseWriter, r *http.Request) {
	post, err := app.cmsService.GetPostDetails(r.Context(), app.readSlugParam(r))
	if err != nil {
		switch {
		case errors.Is(err, cmsservice.ErrPostNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	comments, err := app.cmsService.GetComments(r.Context(), app.readSlugParam(r))
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// widgetPostsHandler serves the sidebar widget: related posts when a slug is
// given, recent posts otherwise.
func (app *application) widgetPostsHandler(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	categories := app.readListParam(r, "categories")

	posts, err := app.cmsService.GetWidgetPosts(r.Context(), slug, categories)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"title": widgetTitle(slug), "posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listFeaturedPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.cmsService.GetFeaturedPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.cmsService.GetCategories(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"categories": categories}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
