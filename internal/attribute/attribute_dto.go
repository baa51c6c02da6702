package attribute

// Kind names the seven controlled vocabularies products are tagged with.
// One table and one module serve all of them; the kind column keeps the
// vocabularies apart.
type Kind string

const (
	KindPlatform  Kind = "platforms"
	KindGenre     Kind = "genres"
	KindLanguage  Kind = "languages"
	KindRegion    Kind = "regions"
	KindAgeRating Kind = "age-ratings"
	KindDeveloper Kind = "developers"
	KindPublisher Kind = "publishers"
)

var knownKinds = map[Kind]struct{}{
	KindPlatform:  {},
	KindGenre:     {},
	KindLanguage:  {},
	KindRegion:    {},
	KindAgeRating: {},
	KindDeveloper: {},
	KindPublisher: {},
}

func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := knownKinds[k]
	return k, ok
}

type CreateAttributeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type UpdateAttributeRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	IsActive *bool  `json:"isActive" binding:"required"`
}

type ListAttributeQuery struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=50"`
	Search string `form:"search"`
}

type AttributeResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"isActive"`
}
