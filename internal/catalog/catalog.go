// Package catalog loads the site profile and project list from YAML data files.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wynterCG/website/internal/media"
)

const (
	ProjectsFile = "projects.yaml"
	SiteFile     = "site.yaml"
)

// ErrNotFound is returned when a project slug does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Social is one outbound profile link.
type Social struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
	Icon  string `yaml:"icon"`
}

// Site is the owner profile shown in the header, hero and footer.
type Site struct {
	Name           string   `yaml:"name"`
	Role           string   `yaml:"role"`
	Headline       string   `yaml:"headline"`
	HeadlineAccent string   `yaml:"headline_accent"`
	Availability   string   `yaml:"availability"`
	HeroVideo      string   `yaml:"hero_video"`
	HeroPoster     string   `yaml:"hero_poster"`
	Skills         []string `yaml:"skills"`
	Socials        []Social `yaml:"socials"`
	Email          string   `yaml:"email"`
	ContactSubject string   `yaml:"contact_subject"`
}

// Catalog is an immutable snapshot of the data files.
type Catalog struct {
	Site     Site
	Projects []media.Project
	bySlug   map[string]int
}

// Project returns the project with slug.
func (c *Catalog) Project(slug string) (*media.Project, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return nil, false
	}
	return &c.Projects[i], true
}

// Covers lists the cover kind of every project in grid order.
func (c *Catalog) Covers() []media.Kind {
	if c == nil {
		return nil
	}
	out := make([]media.Kind, len(c.Projects))
	for i, p := range c.Projects {
		if cover, ok := p.Cover(); ok {
			out[i] = cover.Kind()
		}
	}
	return out
}

type projectsDocument struct {
	Projects []rawProject `yaml:"projects"`
}

type rawProject struct {
	Slug   string     `yaml:"slug"`
	Title  string     `yaml:"title"`
	Tags   []string   `yaml:"tags"`
	Blurb  string     `yaml:"blurb"`
	Link   string     `yaml:"link"`
	Poster string     `yaml:"poster"`
	Media  []rawMedia `yaml:"media"`
}

type rawMedia struct {
	Type   string `yaml:"type"`
	Src    string `yaml:"src"`
	Poster string `yaml:"poster"`
	Loop   *bool  `yaml:"loop"`
	Ratio  string `yaml:"ratio"`
}

// Load reads and validates the data files in dir.
func Load(dir string) (*Catalog, error) {
	siteData, err := os.ReadFile(filepath.Join(dir, SiteFile))
	if err != nil {
		return nil, fmt.Errorf("catalog: read site: %w", err)
	}
	projectsData, err := os.ReadFile(filepath.Join(dir, ProjectsFile))
	if err != nil {
		return nil, fmt.Errorf("catalog: read projects: %w", err)
	}
	return Parse(siteData, projectsData)
}

// Parse validates both documents against their schemas and builds a Catalog.
func Parse(siteData, projectsData []byte) (*Catalog, error) {
	if err := Validate(SiteFile, siteData); err != nil {
		return nil, err
	}
	if err := Validate(ProjectsFile, projectsData); err != nil {
		return nil, err
	}

	var site Site
	if err := yaml.Unmarshal(siteData, &site); err != nil {
		return nil, fmt.Errorf("catalog: decode site: %w", err)
	}
	var doc projectsDocument
	if err := yaml.Unmarshal(projectsData, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode projects: %w", err)
	}

	cat := &Catalog{Site: normalizeSite(site), bySlug: make(map[string]int, len(doc.Projects))}
	for i, raw := range doc.Projects {
		p, err := raw.toProject()
		if err != nil {
			return nil, fmt.Errorf("catalog: project %d: %w", i, err)
		}
		p.Slug = uniqueSlug(p.Slug, cat.bySlug)
		cat.bySlug[p.Slug] = len(cat.Projects)
		cat.Projects = append(cat.Projects, p)
	}
	return cat, nil
}

func (raw rawProject) toProject() (media.Project, error) {
	p := media.Project{
		Slug:   strings.TrimSpace(raw.Slug),
		Title:  strings.TrimSpace(raw.Title),
		Tags:   trimAll(raw.Tags),
		Blurb:  strings.TrimSpace(raw.Blurb),
		Link:   normalizeLink(raw.Link),
		Poster: strings.TrimSpace(raw.Poster),
	}
	if p.Slug == "" {
		p.Slug = media.Slugify(p.Title)
	}
	for j, m := range raw.Media {
		item, err := m.toItem()
		if err != nil {
			return media.Project{}, fmt.Errorf("media %d: %w", j, err)
		}
		p.Media = append(p.Media, item)
	}
	if err := p.Validate(); err != nil {
		return media.Project{}, err
	}
	return p, nil
}

func (m rawMedia) toItem() (media.Item, error) {
	kind, err := media.ParseKind(m.Type)
	if err != nil {
		return nil, err
	}
	src := strings.TrimSpace(m.Src)
	switch kind {
	case media.KindVideo:
		return media.Video{Src: src, Poster: strings.TrimSpace(m.Poster), Loop: m.Loop}, nil
	case media.KindYouTube:
		// an unusable ratio falls back to the default rather than rejecting the file
		ratio, err := media.ParseRatio(m.Ratio)
		if err != nil {
			ratio = media.Ratio{}
		}
		return media.YouTube{Src: src, Ratio: ratio}, nil
	default:
		return media.Image{Src: src}, nil
	}
}

// normalizeLink treats "#" as no link.
func normalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "#" {
		return ""
	}
	return link
}

func normalizeSite(s Site) Site {
	s.Name = strings.TrimSpace(s.Name)
	s.Skills = trimAll(s.Skills)
	socials := s.Socials[:0]
	for _, so := range s.Socials {
		so.Label = strings.TrimSpace(so.Label)
		so.URL = normalizeLink(so.URL)
		if so.Label == "" {
			continue
		}
		socials = append(socials, so)
	}
	s.Socials = socials
	if strings.TrimSpace(s.ContactSubject) == "" {
		s.ContactSubject = "New portfolio inquiry"
	}
	return s
}

func uniqueSlug(slug string, taken map[string]int) string {
	if slug == "" {
		slug = "project"
	}
	if _, ok := taken[slug]; !ok {
		return slug
	}
	for n := 2; ; n++ {
		candidate := slug + "-" + strconv.Itoa(n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
