// Package model holds the timesheet form state: the static catalog of
// workers, jobs and task categories, the per-job task ledger, the task
// entry wizard and the submission gate.
package model

import (
	"errors"
	"fmt"
)

// Category is a broad classification of work and the task types it offers
type Category struct {
	Name  string
	Icon  string
	Tasks []string
}

// Catalog is the static configuration a form is built against. It is
// immutable once constructed; accessors hand out copies.
type Catalog struct {
	workers    []string
	jobs       []string
	categories []Category

	workerIndex   map[string]int
	jobIndex      map[string]int
	categoryIndex map[string]int
	taskIndex     map[string]map[string]int
}

// NewCatalog validates and indexes the roster, job list and categories
func NewCatalog(workers, jobs []string, categories []Category) (*Catalog, error) {
	if len(workers) == 0 {
		return nil, errors.New("catalog: no workers configured")
	}
	if len(jobs) == 0 {
		return nil, errors.New("catalog: no jobs configured")
	}
	if len(categories) == 0 {
		return nil, errors.New("catalog: no categories configured")
	}

	c := &Catalog{
		workers:    append([]string(nil), workers...),
		jobs:       append([]string(nil), jobs...),
		categories: make([]Category, len(categories)),
		taskIndex:  make(map[string]map[string]int, len(categories)),
	}

	var err error
	if c.workerIndex, err = indexNames("worker", workers); err != nil {
		return nil, err
	}
	if c.jobIndex, err = indexNames("job", jobs); err != nil {
		return nil, err
	}

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
		if len(cat.Tasks) == 0 {
			return nil, fmt.Errorf("catalog: category %q has no tasks", cat.Name)
		}
		tasks, err := indexNames("task in "+cat.Name, cat.Tasks)
		if err != nil {
			return nil, err
		}
		c.taskIndex[cat.Name] = tasks
		c.categories[i] = Category{
			Name:  cat.Name,
			Icon:  cat.Icon,
			Tasks: append([]string(nil), cat.Tasks...),
		}
	}
	if c.categoryIndex, err = indexNames("category", names); err != nil {
		return nil, err
	}

	return c, nil
}

func indexNames(kind string, names []string) (map[string]int, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("catalog: empty %s name", kind)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("catalog: duplicate %s %q", kind, name)
		}
		index[name] = i
	}
	return index, nil
}

// Workers returns the roster in configured order
func (c *Catalog) Workers() []string {
	return append([]string(nil), c.workers...)
}

// Jobs returns the job catalog in display order
func (c *Catalog) Jobs() []string {
	return append([]string(nil), c.jobs...)
}

// Categories returns all categories in display order
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Icon: cat.Icon, Tasks: append([]string(nil), cat.Tasks...)}
	}
	return out
}

// Category looks up a category by name
func (c *Catalog) Category(name string) (Category, bool) {
	i, ok := c.categoryIndex[name]
	if !ok {
		return Category{}, false
	}
	cat := c.categories[i]
	return Category{Name: cat.Name, Icon: cat.Icon, Tasks: append([]string(nil), cat.Tasks...)}, true
}

// TasksFor returns the task types of a category, nil if unknown
func (c *Catalog) TasksFor(category string) []string {
	i, ok := c.categoryIndex[category]
	if !ok {
		return nil
	}
	return append([]string(nil), c.categories[i].Tasks...)
}

// HasWorker reports whether name is on the roster
func (c *Catalog) HasWorker(name string) bool {
	_, ok := c.workerIndex[name]
	return ok
}

// HasJob reports whether job is in the catalog
func (c *Catalog) HasJob(job string) bool {
	_, ok := c.jobIndex[job]
	return ok
}

// HasTask reports whether task is one of category's task types
func (c *Catalog) HasTask(category, task string) bool {
	_, ok := c.taskIndex[category][task]
	return ok
}

// WorkerIndex returns the roster position of name, or -1
func (c *Catalog) WorkerIndex(name string) int {
	if i, ok := c.workerIndex[name]; ok {
		return i
	}
	return -1
}

// CategoryIndex returns the display position of a category, or -1
func (c *Catalog) CategoryIndex(name string) int {
	if i, ok := c.categoryIndex[name]; ok {
		return i
	}
	return -1
}
