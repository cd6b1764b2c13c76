package main

import (
	"log/slog"
	"net/http"
	"strings"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url), slog.String("request_id", app.getRequestID(r)))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	err := app.writeJSON(w, status, envelope{"error": message}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message)
}

// upstreamErrorResponse reports a failed CMS call with the upstream error text.
func (app *application) upstreamErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.writeErrorResponse(w, r, http.StatusInternalServerError, err.Error())
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "resource not found")
}

func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.writeErrorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// isAPIRequest reports whether the request expects JSON rather than a page.
func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/v1/")
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		app.notFoundErrorResponse(w, r)
		return
	}
	app.notFoundPage(w, r)
}

func (app *application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		app.methodNotAllowedErrorResponse(w, r)
		return
	}
	app.errorPage(w, r, http.StatusMethodNotAllowed, "This page does not accept that kind of request.")
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	if isAPIRequest(r) {
		app.serverErrorResponse(w, r, err)
		return
	}
	app.serverErrorPage(w, r, err)
}

func (app *application) rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		app.rateLimitExceededResponse(w, r)
		return
	}
	app.errorPage(w, r, http.StatusTooManyRequests, "You are commenting too quickly. Please wait a moment and try again.")
}

func (app *application) notFoundPage(w http.ResponseWriter, r *http.Request) {
	app.errorPage(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

func (app *application) serverErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorPage(w, r, http.StatusInternalServerError, "Something went wrong while loading this page.")
}

func (app *application) errorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := app.newTemplateData()
	data.Error = message
	app.render(w, r, status, "error.html", data)
}
