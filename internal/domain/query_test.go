package domain

import (
	"testing"
	"time"
)

func TestQuery_Key_OrderIndependent(t *testing.T) {
	q1 := NewQuery(CategoryStreaming, "search", map[string]string{
		"title":     "breaking bad",
		"country":   "us",
		"show_type": "series",
	})

	q2 := Query{Category: CategoryStreaming, Operation: "search", Params: map[string]string{}}
	q2.Params["show_type"] = "series"
	q2.Params["country"] = "us"
	q2.Params["title"] = "breaking bad"

	if q1.Key() != q2.Key() {
		t.Errorf("expected identical keys, got %q and %q", q1.Key(), q2.Key())
	}

	// Repeated computation must be stable despite random map iteration.
	for i := 0; i < 50; i++ {
		if got := q1.Key(); got != q2.Key() {
			t.Fatalf("key changed between calls: %q", got)
		}
	}
}

func TestQuery_Key_Format(t *testing.T) {
	q := NewQuery(CategoryStreaming, "search", map[string]string{
		"title":   "breaking bad",
		"country": "us",
	})

	expected := "streaming:search:country=us:title=breaking+bad"
	if q.Key() != expected {
		t.Errorf("expected key %q, got %q", expected, q.Key())
	}
}

func TestQuery_Key_Distinguishes(t *testing.T) {
	tests := []struct {
		name string
		a, b Query
	}{
		{
			name: "different category",
			a:    NewQuery(CategoryMovieRecommendations, "search", map[string]string{"q": "x"}),
			b:    NewQuery(CategoryMovieIDs, "search", map[string]string{"q": "x"}),
		},
		{
			name: "different operation",
			a:    NewQuery(CategoryStreaming, "services", map[string]string{"country": "us"}),
			b:    NewQuery(CategoryStreaming, "new", map[string]string{"country": "us"}),
		},
		{
			name: "different value",
			a:    NewQuery(CategoryStreaming, "services", map[string]string{"country": "us"}),
			b:    NewQuery(CategoryStreaming, "services", map[string]string{"country": "gb"}),
		},
		{
			name: "separator inside value",
			a:    NewQuery(CategoryStreaming, "search", map[string]string{"x": "1:y=2"}),
			b:    NewQuery(CategoryStreaming, "search", map[string]string{"x": "1", "y": "2"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a.Key() == tt.b.Key() {
				t.Errorf("expected different keys, both were %q", tt.a.Key())
			}
		})
	}
}

func TestNewQuery_DropsEmptyParams(t *testing.T) {
	withEmpty := NewQuery(CategoryStreaming, "search", map[string]string{
		"title":     "dune",
		"show_type": "",
		"country":   "  ",
	})
	without := NewQuery(CategoryStreaming, "search", map[string]string{"title": "dune"})

	if withEmpty.Key() != without.Key() {
		t.Errorf("expected empty params to be ignored, got %q vs %q", withEmpty.Key(), without.Key())
	}
	if _, ok := withEmpty.Params["show_type"]; ok {
		t.Error("expected show_type to be dropped")
	}
	if withEmpty.Param("title") != "dune" {
		t.Errorf("expected title 'dune', got %q", withEmpty.Param("title"))
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Happy Movies", "happy movies"},
		{"  90s   SAD  movies ", "90s sad movies"},
		{"kids\tmovies", "kids movies"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.expected {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestDefaultTTLPolicy(t *testing.T) {
	policy := DefaultTTLPolicy()

	tests := []struct {
		category Category
		expected time.Duration
	}{
		{CategoryStreaming, time.Hour},
		{CategoryFootballFixtures, 30 * time.Minute},
		{CategoryStreamingTrending, 30 * time.Minute},
		{CategoryFootballTop5Live, time.Minute},
		{CategoryMovieRecommendations, 6 * time.Hour},
		{CategoryMovieIDs, 24 * time.Hour},
	}

	for _, tt := range tests {
		if got := policy.TTL(tt.category); got != tt.expected {
			t.Errorf("TTL(%s) = %v, want %v", tt.category, got, tt.expected)
		}
	}

	if policy.TTL(CategoryFootballLive) >= policy.TTL(CategoryFootballFixtures) {
		t.Error("expected live matches to expire sooner than fixtures")
	}

	for _, c := range Categories() {
		if !policy.Cacheable(c) {
			t.Errorf("expected %s to be cacheable by default", c)
		}
	}
}

func TestTTLPolicy_UnknownCategory(t *testing.T) {
	policy := DefaultTTLPolicy()

	if policy.Cacheable(Category("nope")) {
		t.Error("expected unknown category to bypass the cache")
	}
}
