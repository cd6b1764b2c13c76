package cmsservice

import (
	"time"

	"github.com/sushihentaime/cmsblog/internal/common"
)

func validateSlug(v *common.Validator, slug string) {
	v.CheckSlug(slug, "slug")
}

func validateCategories(v *common.Validator, categories []string) {
	for _, c := range categories {
		if !common.SlugRX.MatchString(c) {
			v.AddError("categories", "must only contain valid category slugs")
			return
		}
	}
}

func validateCreatedAt(v *common.Validator, createdAt time.Time) {
	v.Check(!createdAt.IsZero(), "created_at", "must be provided")
}
