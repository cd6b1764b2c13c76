package commentservice

import "github.com/sushihentaime/cmsblog/internal/common"

// ValidateCommentRequest requires every field to be non-empty.
func ValidateCommentRequest(req *CommentRequest) error {
	v := common.NewValidator()
	v.Check(v.NotBlank(req.Name), "name", "must be provided")
	v.Check(v.NotBlank(req.Email), "email", "must be provided")
	v.Check(v.NotBlank(req.Comment), "comment", "must be provided")
	v.Check(v.NotBlank(req.Slug), "slug", "must be provided")
	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}
