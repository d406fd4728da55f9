package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Catalog job statuses.
const (
	StatusActive = "active"
	StatusPaused = "paused"
	StatusClosed = "closed"
)

type Job struct {
	ID             string     `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Department     string     `json:"department"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employmentType"`
	Remote         bool       `json:"remote"`
	Status         string     `json:"status"`
	Summary        string     `json:"summary"`
	Description    string     `json:"description"`
	Requirements   []string   `json:"requirements"`
	Tags           []string   `json:"tags"`
	SalaryRange    string     `json:"salaryRange,omitempty"`
	PostedAt       time.Time  `json:"postedAt"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// IsExpired reports whether the job has an expiry at or before now.
func (j *Job) IsExpired(now time.Time) bool {
	return j.ExpiresAt != nil && !j.ExpiresAt.After(now)
}

// IsOpen reports whether the job accepts applications at now.
func (j *Job) IsOpen(now time.Time) bool {
	return strings.EqualFold(j.Status, StatusActive) && !j.IsExpired(now)
}

type jobsFile struct {
	Jobs []Job `json:"jobs"`
}

// Catalog is the build-time set of job postings. It is never mutated after
// New, so concurrent reads need no locking.
type Catalog struct {
	jobs   []*Job
	byID   map[string]*Job
	bySlug map[string]*Job
}

func New(jobs []Job) (*Catalog, error) {
	c := &Catalog{
		jobs:   make([]*Job, 0, len(jobs)),
		byID:   make(map[string]*Job, len(jobs)),
		bySlug: make(map[string]*Job, len(jobs)),
	}
	for i := range jobs {
		j := jobs[i]
		if j.ID == "" || j.Slug == "" {
			return nil, fmt.Errorf("job at index %d is missing id or slug", i)
		}
		if _, dup := c.byID[j.ID]; dup {
			return nil, fmt.Errorf("duplicate job id %q", j.ID)
		}
		if _, dup := c.bySlug[j.Slug]; dup {
			return nil, fmt.Errorf("duplicate job slug %q", j.Slug)
		}
		c.jobs = append(c.jobs, &j)
		c.byID[j.ID] = &j
		c.bySlug[j.Slug] = &j
	}
	return c, nil
}

func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs catalog: %w", err)
	}

	var file jobsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse jobs catalog: %w", err)
	}

	return New(file.Jobs)
}

func (c *Catalog) Get(id string) (*Job, bool) {
	j, ok := c.byID[id]
	return j, ok
}

func (c *Catalog) BySlug(slug string) (*Job, bool) {
	j, ok := c.bySlug[slug]
	return j, ok
}

// All returns every job in catalog order.
func (c *Catalog) All() []*Job {
	result := make([]*Job, len(c.jobs))
	copy(result, c.jobs)
	return result
}

func (c *Catalog) Len() int {
	return len(c.jobs)
}

// Sort orders.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
)

// Query filters a catalog search. Empty fields match everything.
type Query struct {
	Text           string
	Department     string
	Location       string
	EmploymentType string
	Status         string
	Remote         *bool
	IncludeExpired bool
	Sort           string
}

// Search filters, searches and sorts the catalog in memory.
func (c *Catalog) Search(q Query, now time.Time) []*Job {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	var result []*Job
	for _, j := range c.All() {
		if q.Department != "" && !strings.EqualFold(j.Department, q.Department) {
			continue
		}
		if q.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(q.Location)) {
			continue
		}
		if q.EmploymentType != "" && !strings.EqualFold(j.EmploymentType, q.EmploymentType) {
			continue
		}
		if q.Status != "" && !strings.EqualFold(j.Status, q.Status) {
			continue
		}
		if q.Remote != nil && j.Remote != *q.Remote {
			continue
		}
		if !q.IncludeExpired && j.IsExpired(now) {
			continue
		}
		if text != "" && !matchesText(j, text) {
			continue
		}
		result = append(result, j)
	}

	switch q.Sort {
	case SortOldest:
		sort.SliceStable(result, func(a, b int) bool { return result[a].PostedAt.Before(result[b].PostedAt) })
	case SortTitle:
		sort.SliceStable(result, func(a, b int) bool {
			return strings.ToLower(result[a].Title) < strings.ToLower(result[b].Title)
		})
	default:
		sort.SliceStable(result, func(a, b int) bool { return result[a].PostedAt.After(result[b].PostedAt) })
	}
	return result
}

func matchesText(j *Job, text string) bool {
	if strings.Contains(strings.ToLower(j.Title), text) ||
		strings.Contains(strings.ToLower(j.Summary), text) ||
		strings.Contains(strings.ToLower(j.Department), text) {
		return true
	}
	for _, tag := range j.Tags {
		if strings.Contains(strings.ToLower(tag), text) {
			return true
		}
	}
	return false
}
