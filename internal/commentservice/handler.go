package commentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/machinebox/graphql"

	"github.com/sushihentaime/cmsblog/internal/common"
)

const createCommentMutation = `
	mutation CreateComment($name: String!, $comment: String!, $email: String!, $slug: String!) {
		createComment(data: { name: $name, email: $email, comment: $comment, post: { connect: { slug: $slug } } }) { id }
	}`

// NewCommentService returns a relay that authenticates against the CMS with
// token. mb may be nil, in which case no submission events are published.
func NewCommentService(client common.GraphQLClient, token string, mb common.MessageProducer, logger *slog.Logger) *CommentService {
	return &CommentService{
		client: client,
		token:  token,
		mb:     mb,
		logger: logger,
	}
}

// SubmitComment forwards the comment to the CMS as a createComment mutation
// and returns the CMS data payload unchanged.
func (s *CommentService) SubmitComment(ctx context.Context, req *CommentRequest) (json.RawMessage, error) {
	if err := ValidateCommentRequest(req); err != nil {
		return nil, err
	}

	gqlReq := graphql.NewRequest(createCommentMutation)
	gqlReq.Var("name", req.Name)
	gqlReq.Var("email", req.Email)
	gqlReq.Var("comment", req.Comment)
	gqlReq.Var("slug", req.Slug)
	gqlReq.Header.Set("Authorization", "Bearer "+s.token)

	var data json.RawMessage
	err := s.client.Run(ctx, gqlReq, &data)
	if err != nil {
		return nil, fmt.Errorf("cms CreateComment: %w", err)
	}

	s.publishSubmitted(ctx, req)

	return data, nil
}

func (s *CommentService) publishSubmitted(ctx context.Context, req *CommentRequest) {
	if s.mb == nil {
		return
	}

	msg, err := json.Marshal(CommentSubmitted{
		Name:    req.Name,
		Email:   req.Email,
		Comment: req.Comment,
		Slug:    req.Slug,
	})
	if err != nil {
		s.logger.Error("could not marshal comment event", slog.String("error", err.Error()))
		return
	}

	err = s.mb.Publish(ctx, msg, common.CommentSubmittedKey, common.CommentExchange)
	if err != nil {
		s.logger.Error("could not publish comment event", slog.String("slug", req.Slug), slog.String("error", err.Error()))
	}
}
