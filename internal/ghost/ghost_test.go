package ghost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dev-journal/internal/config"
	"dev-journal/internal/journal"

	"github.com/golang-jwt/jwt/v5"
)

const testAdminKey = "abc123:0123456789abcdef0123456789abcdef"

func TestCreatePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/ghost/api/v3/admin/posts/" || r.URL.Query().Get("source") != "html" {
				t.Errorf("Unexpected request URL '%s'", r.URL.String())
			}

			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Ghost ") {
				t.Fatalf("Expected Ghost authorization, got '%s'", auth)
			}
			token, err := jwt.Parse(strings.TrimPrefix(auth, "Ghost "), func(tok *jwt.Token) (interface{}, error) {
				if tok.Header["kid"] != "abc123" {
					t.Errorf("Expected kid 'abc123', got %v", tok.Header["kid"])
				}
				return []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}, nil
			}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithAudience("/v3/admin/"))
			if err != nil || !token.Valid {
				t.Errorf("Expected a valid admin token, got %v", err)
			}

			var body createPostRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Posts) != 1 {
				t.Errorf("Failed to decode body: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			p := body.Posts[0]
			if p.Status != "draft" {
				t.Errorf("Expected a draft post, got %+v", p)
			}
			if len(p.Tags) != 1 || p.Tags[0].Name != JournalTag {
				t.Errorf("Expected the journal tag, got %+v", p.Tags)
			}

			w.WriteHeader(http.StatusCreated)
			fmt.Fprintf(w, `{"posts": [{"id": "p1", "title": %q, "status": "draft", "url": "http://ghost.test/p/p1/"}]}`, p.Title)
		}))
		defer server.Close()

		client := NewClient(&config.Config{GhostURL: server.URL + "/", GhostAdminKey: testAdminKey})
		post, err := client.CreatePost(context.Background(), "Weekly Journal", "<p>hi</p>", false)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if post.ID != "p1" || post.Title != "Weekly Journal" || post.Status != "draft" {
			t.Errorf("Unexpected post %+v", post)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprintln(w, `{"errors": [{"message": "Invalid token"}]}`)
		}))
		defer server.Close()

		client := NewClient(&config.Config{GhostURL: server.URL, GhostAdminKey: testAdminKey})
		if _, err := client.CreatePost(context.Background(), "t", "h", true); err == nil {
			t.Fatal("Expected an error for non-201 status code, got nil")
		}
	})

	t.Run("InvalidKey", func(t *testing.T) {
		client := NewClient(&config.Config{GhostURL: "http://unused", GhostAdminKey: "no-colon"})
		if _, err := client.CreatePost(context.Background(), "t", "h", false); err == nil {
			t.Fatal("Expected an error for a malformed admin key")
		}
	})
}

func TestRenderWeekHTML(t *testing.T) {
	w := journal.Empty().
		WithPlanner(journal.Monday, journal.PlannerGoal, "Ship <v1>").
		WithDaily(journal.Monday, journal.DailyLog, "line one\nline two").
		WithCompleted(journal.Monday, true).
		WithRetro(journal.RetroSummary, "Solid week")

	html, err := RenderWeekHTML(w)
	if err != nil {
		t.Fatalf("RenderWeekHTML failed: %v", err)
	}
	for _, want := range []string{"Ship &lt;v1&gt;", "line one<br>line two", "(1/5 completed)", "Solid week", "<h3>Friday</h3>"} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected HTML to contain %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<v1>") {
		t.Error("User text must be escaped")
	}
}

func TestPostTitle(t *testing.T) {
	wed := time.Date(2024, 5, 8, 9, 0, 0, 0, time.UTC)
	if got := PostTitle(wed); got != "Weekly Journal: week of 2024-05-06" {
		t.Errorf("Unexpected title '%s'", got)
	}
	sun := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)
	if got := PostTitle(sun); got != "Weekly Journal: week of 2024-05-06" {
		t.Errorf("Unexpected title for Sunday '%s'", got)
	}
}
