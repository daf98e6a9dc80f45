package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

// Document is the seed file layout.
type Document struct {
	Skills   []Skill           `json:"skills"`
	Projects []Project         `json:"projects"`
	About    map[string]string `json:"about"`
	Contact  map[string]string `json:"contact"`
}

// Skill is a seed skill entry.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Category    string `json:"category"`
	Order       int    `json:"order"`
}

// Project is a seed project entry.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Gradient     string   `json:"gradient"`
	ProjectURL   *string  `json:"projectUrl"`
	Technologies []string `json:"technologies"`
	Featured     *bool    `json:"featured"`
	Order        int      `json:"order"`
}

// Result counts what Apply wrote.
type Result struct {
	SkillsCreated   int
	ProjectsCreated int
	AboutFields     int
	ContactFields   int
}

// Seeder writes a Document through the services so validation and defaults
// match the API.
type Seeder struct {
	Skills      service.SkillService
	Projects    service.ProjectService
	About       service.InfoService
	Contact     service.InfoService
	SkillRepo   repository.SkillRepository
	ProjectRepo repository.ProjectRepository
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Load reads a Document from a file path or an http(s) URL.
func Load(source string) (*Document, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := httpClient.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: status code %d", source, resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", source, err)
		}
		r = f
	}
	defer r.Close()

	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse seed document: %w", err)
	}
	return &doc, nil
}

// Apply upserts every about and contact field, then creates skills and
// projects only when their table is empty, so reruns do not duplicate rows.
func (s *Seeder) Apply(ctx context.Context, doc *Document) (Result, error) {
	var res Result

	n, err := upsertAll(ctx, s.About, doc.About)
	if err != nil {
		return res, fmt.Errorf("seed about: %w", err)
	}
	res.AboutFields = n

	n, err = upsertAll(ctx, s.Contact, doc.Contact)
	if err != nil {
		return res, fmt.Errorf("seed contact: %w", err)
	}
	res.ContactFields = n

	count, err := s.SkillRepo.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("count skills: %w", err)
	}
	if count == 0 {
		for _, sk := range doc.Skills {
			_, err := s.Skills.Create(ctx, service.SkillInput{
				Name:        sk.Name,
				Description: sk.Description,
				IconURL:     sk.IconURL,
				Type:        model.SkillType(sk.Type),
				Color:       sk.Color,
				Category:    sk.Category,
				Order:       sk.Order,
			})
			if err != nil {
				return res, fmt.Errorf("seed skill %q: %w", sk.Name, err)
			}
			res.SkillsCreated++
		}
	}

	count, err = s.ProjectRepo.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("count projects: %w", err)
	}
	if count == 0 {
		for _, p := range doc.Projects {
			_, err := s.Projects.Create(ctx, service.ProjectInput{
				Title:        p.Title,
				Description:  p.Description,
				Gradient:     p.Gradient,
				ProjectURL:   p.ProjectURL,
				Technologies: p.Technologies,
				Featured:     p.Featured,
				Order:        p.Order,
			})
			if err != nil {
				return res, fmt.Errorf("seed project %q: %w", p.Title, err)
			}
			res.ProjectsCreated++
		}
	}

	return res, nil
}

func upsertAll(ctx context.Context, svc service.InfoService, fields map[string]string) (int, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := fields[k]
		if err := svc.Upsert(ctx, k, &v); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

// EnsureAdmin creates the admin account unless it already exists. It reports
// whether a new account was created.
func EnsureAdmin(ctx context.Context, authService service.AuthService, username, password string) (bool, error) {
	if _, err := authService.InitAdmin(ctx, username, password); err != nil {
		if errors.Is(err, apperrors.ErrAdminExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
