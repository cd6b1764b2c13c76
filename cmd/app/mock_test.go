package main

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/sushihentaime/cmsblog/internal/commentservice"
)

type MockCommentSubmitter struct {
	mock.Mock
}

func (m *MockCommentSubmitter) SubmitComment(ctx context.Context, req *commentservice.CommentRequest) (json.RawMessage, error) {
	args := m.Called(req)
	if data := args.Get(0); data != nil {
		return data.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}
