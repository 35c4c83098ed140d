package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Site is the public blog configuration served to the frontend
type Site struct {
	Profile    Profile    `yaml:"profile" json:"profile"`
	Projects   []Project  `yaml:"projects" json:"projects"`
	Blog       Blog       `yaml:"blog" json:"blog"`
	Link       string     `yaml:"link" json:"link"`
	Since      int        `yaml:"since" json:"since"`
	Lang       string     `yaml:"lang" json:"lang"`
	Revalidate int        `yaml:"revalidate" json:"revalidate"` // seconds, also HTTP max-age
	Properties Properties `yaml:"properties" json:"-"`
	AllLabel   string     `yaml:"all_label" json:"all_label"`
	Layout     Layout     `yaml:"layout" json:"-"`
}

type Profile struct {
	Name   string `yaml:"name" json:"name"`
	Image  string `yaml:"image" json:"image,omitempty"`
	Role   string `yaml:"role" json:"role,omitempty"`
	Bio    string `yaml:"bio" json:"bio,omitempty"`
	Email  string `yaml:"email" json:"email,omitempty"`
	GitHub string `yaml:"github" json:"github,omitempty"`
}

type Project struct {
	Name string `yaml:"name" json:"name"`
	Href string `yaml:"href" json:"href"`
}

type Blog struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Properties names the collection properties the blog reads
type Properties struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Category string `yaml:"category"`
	Tags     string `yaml:"tags"`
	Slug     string `yaml:"slug"`
}

// Layout is the article geometry used for column widths
type Layout struct {
	ContentWidth float64 `yaml:"content_width"`
	ColumnGutter float64 `yaml:"column_gutter"`
}

// DefaultSite returns the configuration used when no site file exists
func DefaultSite() *Site {
	return &Site{
		Blog:       Blog{Title: "Blog"},
		Since:      time.Now().Year(),
		Lang:       "en-US",
		Revalidate: 1800,
		Properties: Properties{
			Title:    "title",
			Date:     "date",
			Category: "category",
			Tags:     "tags",
			Slug:     "slug",
		},
		AllLabel: "📂 All",
		Layout:   Layout{ContentWidth: 708, ColumnGutter: 32},
	}
}

// LoadSite reads a YAML site file over the defaults. A missing file yields the defaults.
func LoadSite(path string) (*Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}
	if err := yaml.Unmarshal(data, site); err != nil {
		return nil, fmt.Errorf("parse site config %s: %w", path, err)
	}
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site config %s: %w", path, err)
	}
	return site, nil
}

// Validate checks the fields the pipeline depends on
func (s *Site) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Link, is.URL),
		validation.Field(&s.Revalidate, validation.Min(0)),
		validation.Field(&s.AllLabel, validation.Required),
		validation.Field(&s.Properties),
		validation.Field(&s.Layout),
	)
}

func (p Properties) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Date, validation.Required),
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.Tags, validation.Required),
		validation.Field(&p.Slug, validation.Required),
	)
}

func (l Layout) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ContentWidth, validation.Required, validation.Min(1.0)),
		validation.Field(&l.ColumnGutter, validation.Min(0.0)),
	)
}

// MaxAge is the Cache-Control max-age for API responses
func (s *Site) MaxAge() time.Duration {
	return time.Duration(s.Revalidate) * time.Second
}
