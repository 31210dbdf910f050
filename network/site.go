package network

import "github.com/lexfrei/go-unipy/model"

// SiteKind is a controller site.
var SiteKind = model.NewKind("Site", nil,
	model.String("id").From("_id"),
	model.String("anonymous_id"),
	model.String("name"),
	model.String("description").From("desc"),
	model.String("role"),
	model.String("hidden_id").From("attr_hidden_id"),
)

// Site is a controller site. Name is the short name used in API paths.
type Site struct {
	*model.Object
}

func (s *Site) ID() string          { return s.String("id") }
func (s *Site) Name() string        { return s.String("name") }
func (s *Site) Description() string { return s.String("description") }
func (s *Site) Role() string        { return s.String("role") }
