package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFound)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// pages
	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/post/:slug", app.postHandler)
	router.HandlerFunc(http.MethodPost, "/post/:slug/comments", app.rateLimit(app.createCommentFormHandler))
	router.HandlerFunc(http.MethodGet, "/category/:slug", app.categoryHandler)

	// comment relay
	router.HandlerFunc(http.MethodPost, "/api/comments", app.rateLimit(app.createCommentHandler))

	// read API
	router.HandlerFunc(http.MethodGet, "/api/posts", app.listPostsHandler)
	router.HandlerFunc(http.MethodGet, "/api/posts/:slug", app.showPostHandler)
	router.HandlerFunc(http.MethodGet, "/api/posts/:slug/comments", app.listCommentsHandler)
	router.HandlerFunc(http.MethodGet, "/api/widget", app.widgetPostsHandler)
	router.HandlerFunc(http.MethodGet, "/api/featured", app.listFeaturedPostsHandler)
	router.HandlerFunc(http.MethodGet, "/api/categories", app.listCategoriesHandler)

	return app.recoverPanic(app.logRequest(router))
}
