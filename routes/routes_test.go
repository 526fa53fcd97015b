package routes_test

import (
	"testing"

	"github.com/vibecircle/journal/routes"
)

func TestLinksBuildSiteURLs(t *testing.T) {
	links := routes.New("https://journal.example.com/")

	cases := []struct {
		name  string
		build func() (string, error)
		want  string
	}{
		{"home", links.Home, "https://journal.example.com/"},
		{"post", func() (string, error) { return links.Post("night-markets-are-back") }, "https://journal.example.com/post/night-markets-are-back"},
		{"category", func() (string, error) { return links.Category("city-energy") }, "https://journal.example.com/category/city-energy"},
		{"author", func() (string, error) { return links.Author("maya-chen") }, "https://journal.example.com/author/maya-chen"},
		{"authors", links.Authors, "https://journal.example.com/authors"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if got != tc.want {
				t.Errorf("url = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLinksRejectUnknownRoute(t *testing.T) {
	links := routes.NewWithManager(nil)
	if _, err := links.Home(); err == nil {
		t.Fatal("expected error for missing manager")
	}
}
