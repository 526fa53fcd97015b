// Package routes centralizes the journal's public URL space. Handlers and
// templates build links through it instead of concatenating paths, so the
// site can move under a different base URL without touching callers.
package routes

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-urlkit"
)

// Route names within the site group.
const (
	RouteHome     = "home"
	RoutePost     = "post"
	RouteCategory = "category"
	RouteAuthor   = "author"
	RouteAuthors  = "authors"
)

const siteGroup = "site"

// Config builds the urlkit route table for the public site.
func Config(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    siteGroup,
				BaseURL: strings.TrimRight(baseURL, "/"),
				Paths: map[string]string{
					RouteHome:     "/",
					RoutePost:     "/post/:slug",
					RouteCategory: "/category/:category",
					RouteAuthor:   "/author/:name",
					RouteAuthors:  "/authors",
				},
			},
		},
	}
}

// Links resolves named routes into absolute URLs.
type Links struct {
	manager *urlkit.RouteManager
}

// New builds a Links resolver for the given base URL.
func New(baseURL string) *Links {
	return &Links{manager: urlkit.NewRouteManager(Config(baseURL))}
}

// NewWithManager wraps an existing route manager that carries a "site"
// group with the journal's route names.
func NewWithManager(manager *urlkit.RouteManager) *Links {
	return &Links{manager: manager}
}

// Home returns the site root URL.
func (l *Links) Home() (string, error) {
	return l.build(RouteHome, nil)
}

// Post returns the detail URL for a post slug.
func (l *Links) Post(slug string) (string, error) {
	return l.build(RoutePost, map[string]any{"slug": slug})
}

// Category returns the listing URL for a category slug.
func (l *Links) Category(category string) (string, error) {
	return l.build(RouteCategory, map[string]any{"category": category})
}

// Author returns the profile URL for an author slug.
func (l *Links) Author(name string) (string, error) {
	return l.build(RouteAuthor, map[string]any{"name": name})
}

// Authors returns the author index URL.
func (l *Links) Authors() (string, error) {
	return l.build(RouteAuthors, nil)
}

func (l *Links) build(route string, params map[string]any) (string, error) {
	group, err := siteGroupFor(l.manager)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}
	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("routes: build %s: %w", route, err)
	}
	return url, nil
}

// urlkit panics on unknown groups and routes; recover into errors so a
// misconfigured route table surfaces as a failed request instead of a
// crashed process.
func siteGroupFor(manager *urlkit.RouteManager) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("routes: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: group %q not found", siteGroup)
		}
	}()
	group = manager.Group(siteGroup)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("routes: site group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: route %q not found", route)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
