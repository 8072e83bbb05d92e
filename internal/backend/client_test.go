package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sauticare_web/internal/config"
	"sauticare_web/internal/model"
	"sauticare_web/internal/util"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.BackendConfig{BaseURL: srv.URL}, StaticToken(token))
	return client, srv
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":1,"name":"Amina","email":"a@example.com","role":"learner"}`))
	})

	user, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if user.Name != "Amina" {
		t.Fatalf("user = %+v", user)
	}
}

func TestClientFailsFastWithoutToken(t *testing.T) {
	called := false
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.CurrentUser(context.Background())
	if !errors.Is(err, util.ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
	if called {
		t.Fatal("request must not reach the network without a token")
	}
}

func TestClientLoginNeedsNoToken(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("login must not carry Authorization, got %q", auth)
		}
		w.Write([]byte(`{"access_token":"tok-abc","token_type":"bearer"}`))
	})

	resp, err := client.Login(context.Background(), "a@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken != "tok-abc" {
		t.Fatalf("token = %q", resp.AccessToken)
	}
}

func TestClientDecodesErrorDetail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail field", 401, `{"detail":"Incorrect email or password"}`, "Incorrect email or password"},
		{"message fallback", 422, `{"message":"invalid payload"}`, "invalid payload"},
		{"opaque body", 502, `<html>bad gateway</html>`, "request failed with status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.CurrentUser(context.Background())
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.Status != tt.status || apiErr.Detail != tt.want {
				t.Fatalf("got (%d, %q), want (%d, %q)", apiErr.Status, apiErr.Detail, tt.status, tt.want)
			}
			if !IsStatus(err, tt.status) {
				t.Fatal("IsStatus mismatch")
			}
		})
	}
}

func TestClientLessonFilters(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id":"l1","title":"Clean Water"}]`))
	})

	lessons, err := client.Lessons(context.Background(), model.LessonFilter{
		Category:        "hygiene",
		DifficultyLevel: 2,
		Language:        "sw",
	})
	if err != nil {
		t.Fatalf("Lessons: %v", err)
	}
	if len(lessons) != 1 || lessons[0].ID != "l1" {
		t.Fatalf("lessons = %+v", lessons)
	}

	for _, want := range []string{"category=hygiene", "difficulty_level=2", "language=sw"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestClientSubmitAttemptMultipart(t *testing.T) {
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("session_id"); got != "sess-1" {
			t.Errorf("session_id = %q", got)
		}
		if got := r.FormValue("phrase_id"); got != "phr-1" {
			t.Errorf("phrase_id = %q", got)
		}

		// 音频必须在 file 字段
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "attempt.webm" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "audio-bytes" {
			t.Errorf("file content = %q", data)
		}

		w.Write([]byte(`{"transcription":"maji safi","pronunciation_score":82.5,"confidence_score":0.9,"feedback":{"overall":"good"}}`))
	})

	result, err := client.SubmitPhraseAttempt(context.Background(), "sess-1", "phr-1", "attempt.webm", strings.NewReader("audio-bytes"))
	if err != nil {
		t.Fatalf("SubmitPhraseAttempt: %v", err)
	}
	if result.PronunciationScore != 82.5 || !result.Passed() {
		t.Fatalf("result = %+v", result)
	}
}

func TestClientTrimsBaseURLSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":1}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(config.BackendConfig{BaseURL: srv.URL + "/"}, StaticToken("tok"))
	if _, err := client.CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if gotPath != "/auth/me" {
		t.Fatalf("path = %q", gotPath)
	}
}
