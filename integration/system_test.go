//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"IssueStore/internal/issues"
	"IssueStore/pkg/kit"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8084")

func TestSystem_E2E(t *testing.T) {
	secret := os.Getenv("LOADER_SECRET")
	if secret == "" {
		t.Skip("LOADER_SECRET not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	token, err := kit.NewTokenMaker(secret).New("e2e", kit.RoleLoader, 5*time.Minute)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	artID := uuid.NewString()
	node := 100000 + int(time.Now().Unix()%100000)
	day := fmt.Sprintf("1999-%02d-%02dT00:00:00", 1+time.Now().Second()%12, 1+time.Now().Minute()%28)

	doJSONAuth(t, http.MethodPost, baseURL+"/issues", token, map[string]any{
		"date_published": day,
		"articles": []map[string]any{
			{"uuid": artID, "node_number": node},
		},
	}, nil, 201)

	doJSONAuth(t, http.MethodPost, baseURL+"/articles", token, map[string]any{"uuid": artID, "title": "e2e"}, nil, 201)
	doJSONAuth(t, http.MethodPost, baseURL+"/articles", token, map[string]any{"uuid": artID, "title": "again"}, nil, 200)

	var view issues.ArticleView
	doJSON(t, http.MethodGet, baseURL+"/articles/"+artID, nil, &view, 200)
	if view.Article.Title != "e2e" || view.Issue == nil {
		t.Fatalf("article view: %#v", view)
	}

	var m issues.NodeMatch
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/nodes/%d", baseURL, node), nil, &m, 200)
	if m.Article.UUID != artID {
		t.Fatalf("node match: %#v", m)
	}

	var list []issues.Issue
	doJSON(t, http.MethodGet, baseURL+"/issues", nil, &list, 200)
	for i := 1; i < len(list); i++ {
		if list[i-1].DateKey() > list[i].DateKey() {
			t.Fatalf("issues out of order at %d", i)
		}
	}

	if os.Getenv("E2E_RESTART_ISSUES") == "1" {
		restartIssuesContainer(t, ctx)
		waitReady(t, ctx, baseURL+"/readyz")
		// state lives for one process only
		doJSON(t, http.MethodGet, baseURL+"/articles/"+artID, nil, nil, 404)
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()
	doJSONAuth(t, method, url, "", body, out, want)
}

func doJSONAuth(t *testing.T, method, url, token string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
