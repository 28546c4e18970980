package query

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
)

// FilterName — имя фильтра, совпадает с query-параметром.
type FilterName string

const (
	FilterTag            FilterName = "tag"
	FilterCategory       FilterName = "category"
	FilterStatus         FilterName = "status"
	FilterOrganizationID FilterName = "organization_id"
	FilterOrganization   FilterName = "organization"
	FilterUsername       FilterName = "username"
	FilterOwner          FilterName = "owner"
	FilterArticleID      FilterName = "article_id"
	FilterDates          FilterName = "dates"
)

// Статусы для view "me".
const (
	StatusPublished   = "published"
	StatusUnpublished = "unpublished"
	StatusAll         = "all"
)

// Filters — предикаты выборки. Нулевое значение поля означает «фильтр не задан».
type Filters struct {
	Tag            string `query:"tag"             validate:"omitempty,max=30,alphanumunicode"`
	Category       string `query:"category"        validate:"omitempty,max=30,slug"`
	Status         string `query:"status"          validate:"omitempty,oneof=published unpublished all"`
	OrganizationID int64  `query:"organization_id" validate:"gte=0"`
	Organization   string `query:"organization"    validate:"omitempty,max=30,slug"`
	Username       string `query:"username"        validate:"omitempty,max=30,slug"`
	OwnerID        int64  `query:"owner"           validate:"gte=0"`
	ArticleID      int64  `query:"article_id"      validate:"gte=0"`

	Dates *DateRange `validate:"-"`
}

// present возвращает заданные фильтры в фиксированном порядке:
// от него зависит порядок предикатов и плейсхолдеров в SQL.
func (f Filters) present() []FilterName {
	var out []FilterName
	if f.Tag != "" {
		out = append(out, FilterTag)
	}
	if f.Category != "" {
		out = append(out, FilterCategory)
	}
	if f.Status != "" {
		out = append(out, FilterStatus)
	}
	if f.OrganizationID != 0 {
		out = append(out, FilterOrganizationID)
	}
	if f.Organization != "" {
		out = append(out, FilterOrganization)
	}
	if f.Username != "" {
		out = append(out, FilterUsername)
	}
	if f.OwnerID != 0 {
		out = append(out, FilterOwner)
	}
	if f.ArticleID != 0 {
		out = append(out, FilterArticleID)
	}
	if f.Dates != nil {
		out = append(out, FilterDates)
	}

	return out
}

// arg возвращает значение фильтра для плейсхолдера.
func (f Filters) arg(name FilterName) any {
	switch name {
	case FilterTag:
		return strings.ToLower(f.Tag)
	case FilterCategory:
		return f.Category
	case FilterOrganizationID:
		return f.OrganizationID
	case FilterOrganization:
		return f.Organization
	case FilterUsername:
		return f.Username
	case FilterOwner:
		return f.OwnerID
	case FilterArticleID:
		return f.ArticleID
	default:
		return nil
	}
}

var (
	validate = newValidator()
	slugRe   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("query: register slug validation: %v", err))
	}

	return v
}

// Validate проверяет значения фильтров. Первая ошибка превращается в
// ValidationError("<param>_invalid").
func (f Filters) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return models.NewValidationError(verrs[0].Field() + "_invalid")
	}

	return models.NewValidationError("filters_invalid")
}
