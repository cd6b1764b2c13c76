package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/sushihentaime/cmsblog/internal/cmsservice"
	"github.com/sushihentaime/cmsblog/internal/commentservice"
	"github.com/sushihentaime/cmsblog/internal/common"
)

const (
	formRequiredMessage = "All fields are required."
	formFailedMessage   = "Your comment could not be submitted. Please try again."
)

// homeData loads the post list, featured posts, recent posts and categories.
func (app *application) homeData(ctx context.Context) (*templateData, error) {
	data := app.newTemplateData()
	data.WidgetTitle = widgetTitle("")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		data.Posts, err = app.cmsService.GetPosts(ctx)
		return err
	})
	g.Go(func() (err error) {
		data.FeaturedPosts, err = app.cmsService.GetFeaturedPosts(ctx)
		return err
	})
	g.Go(func() (err error) {
		data.WidgetPosts, err = app.cmsService.GetWidgetPosts(ctx, "", nil)
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = app.cmsService.GetCategories(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

// postData loads a post and then, concurrently, everything shown around it.
func (app *application) postData(ctx context.Context, slug string) (*templateData, error) {
	post, err := app.cmsService.GetPostDetails(ctx, slug)
	if err != nil {
		return nil, err
	}

	data := app.newTemplateData()
	data.Post = post
	data.WidgetTitle = widgetTitle(post.Slug)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		data.Comments, err = app.cmsService.GetComments(ctx, post.Slug)
		return err
	})
	g.Go(func() (err error) {
		data.WidgetPosts, err = app.cmsService.GetWidgetPosts(ctx, post.Slug, post.CategorySlugs())
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = app.cmsService.GetCategories(ctx)
		return err
	})
	if !post.CreatedAt.IsZero() {
		g.Go(func() (err error) {
			data.Adjacent, err = app.cmsService.GetAdjacentPosts(ctx, post.CreatedAt, post.Slug)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

// categoryData loads the posts of a category together with the sidebar.
func (app *application) categoryData(ctx context.Context, slug string) (*templateData, error) {
	category, err := app.cmsService.GetCategory(ctx, slug)
	if err != nil {
		return nil, err
	}

	data := app.newTemplateData()
	data.Category = category
	data.WidgetTitle = widgetTitle("")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		data.Posts, err = app.cmsService.GetCategoryPosts(ctx, category.Slug)
		return err
	})
	g.Go(func() (err error) {
		data.WidgetPosts, err = app.cmsService.GetWidgetPosts(ctx, "", nil)
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = app.cmsService.GetCategories(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

func (app *application) pageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cmsservice.ErrPostNotFound), errors.Is(err, cmsservice.ErrCategoryNotFound):
		app.notFoundPage(w, r)
	case errors.As(err, &common.ValidationError{}):
		app.notFoundPage(w, r)
	default:
		app.serverErrorPage(w, r, err)
	}
}

func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	data, err := app.homeData(r.Context())
	if err != nil {
		app.pageError(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "home.html", data)
}

func (app *application) postHandler(w http.ResponseWriter, r *http.Request) {
	data, err := app.postData(r.Context(), app.readSlugParam(r))
	if err != nil {
		app.pageError(w, r, err)
		return
	}

	data.Form.Name, data.Form.Email = app.remember.Load(r)
	data.Form.StoreData = data.Form.Name != "" || data.Form.Email != ""
	data.Form.Submitted = r.URL.Query().Get("submitted") == "true"

	app.render(w, r, http.StatusOK, "post.html", data)
}

func (app *application) categoryHandler(w http.ResponseWriter, r *http.Request) {
	data, err := app.categoryData(r.Context(), app.readSlugParam(r))
	if err != nil {
		app.pageError(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "category.html", data)
}

func (app *application) createCommentFormHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readSlugParam(r)

	v := common.NewValidator()
	v.CheckSlug(slug, "slug")
	if !v.Valid() {
		app.notFoundPage(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBodyBytes))
	err := r.ParseForm()
	if err != nil {
		app.errorPage(w, r, http.StatusBadRequest, "The comment form could not be read.")
		return
	}

	form := commentForm{
		Name:      r.PostForm.Get("name"),
		Email:     r.PostForm.Get("email"),
		Comment:   r.PostForm.Get("comment"),
		StoreData: r.PostForm.Get("storeData") != "",
	}

	req := &commentservice.CommentRequest{
		Name:    form.Name,
		Email:   form.Email,
		Comment: form.Comment,
		Slug:    slug,
	}

	err = commentservice.ValidateCommentRequest(req)
	if err != nil {
		form.Error = formRequiredMessage
		app.renderCommentForm(w, r, http.StatusUnprocessableEntity, slug, form)
		return
	}

	if form.StoreData {
		if err := app.remember.Save(w, form.Name, form.Email); err != nil {
			app.logError(r, err)
		}
	} else {
		app.remember.Forget(w)
	}

	_, err = app.comments.SubmitComment(r.Context(), req)
	if err != nil {
		app.logger.Error("comment submission failed", slog.String("slug", slug), slog.String("error", err.Error()), slog.String("request_id", app.getRequestID(r)))
		form.Error = formFailedMessage
		app.renderCommentForm(w, r, http.StatusBadGateway, slug, form)
		return
	}

	http.Redirect(w, r, "/post/"+slug+"?submitted=true#comment-form", http.StatusSeeOther)
}

// renderCommentForm shows the post page again with the submitted form values.
func (app *application) renderCommentForm(w http.ResponseWriter, r *http.Request, status int, slug string, form commentForm) {
	data, err := app.postData(r.Context(), slug)
	if err != nil {
		app.pageError(w, r, err)
		return
	}

	data.Form = form
	app.render(w, r, status, "post.html", data)
}
