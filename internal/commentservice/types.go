package commentservice

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"

	"github.com/sushihentaime/cmsblog/internal/common"
)

// CommentRequest is the payload accepted by the relay endpoint.
type CommentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Comment string `json:"comment"`
	Slug    string `json:"slug"`
}

// CommentSubmitted is published after the CMS accepted a comment.
type CommentSubmitted struct {
	Name    string
	Email   string
	Comment string
	Slug    string
}

type CommentService struct {
	client common.GraphQLClient
	token  string
	mb     common.MessageProducer
	logger *slog.Logger
}

// Client submits comments to a relay endpoint over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Remember keeps a visitor's name and email in signed cookies.
type Remember struct {
	sc     *securecookie.SecureCookie
	secure bool
}
