package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lvdund/ueprofiles/apps/console/internal/config"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
)

var testSession = &Session{Username: "admin", Token: "token-001"}

func newTestClient(url string) *Client {
	return NewClient(&config.Config{ProfileAPIURL: url})
}

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != PathLogin {
			t.Errorf("expected %s, got %s", PathLogin, r.URL.Path)
		}
		if r.Header.Get(HeaderTraceID) == "" {
			t.Error("expected X-Trace-ID header")
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry Authorization header")
		}

		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Username != "admin" || req.Password != "pw" {
			t.Errorf("unexpected credentials: %+v", req)
		}

		w.Header().Set("Content-Type", ContentTypeJSON)
		json.NewEncoder(w).Encode(loginResponse{Token: "token-001"})
	}))
	defer server.Close()

	sess, err := newTestClient(server.URL).Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.Username != "admin" || sess.Token != "token-001" {
		t.Errorf("Session = %+v", sess)
	}
}

func TestLoginUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", ContentTypeJSON)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Login(context.Background(), "admin", "wrong")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if !apiErr.IsUnauthorized() {
		t.Errorf("IsUnauthorized() = false (status=%d)", apiErr.StatusCode)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Invalid credentials")
	}
	if !IsRejected(err) || IsTransport(err) {
		t.Error("401 should be classified as a rejection")
	}
}

func TestLoginMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Login(context.Background(), "admin", "pw")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathRegister {
			t.Errorf("expected %s, got %s", PathRegister, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"User registered"}`))
	}))
	defer server.Close()

	if err := newTestClient(server.URL).Register(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathLogout {
			t.Errorf("expected %s, got %s", PathLogout, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer token-001" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := newTestClient(server.URL).Logout(context.Background(), testSession); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
}

func TestListProfiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != PathProfiles {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer token-001" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", ContentTypeJSON)
		w.Write([]byte(`[{"supi":"sub-1","createdAt":"2024-01-01T00:00:00Z"},{"supi":"sub-2"}]`))
	}))
	defer server.Close()

	docs, err := newTestClient(server.URL).ListProfiles(context.Background(), testSession)
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len = %d, want 2", len(docs))
	}
	if record.Identifier(docs[0]) != "sub-1" || record.Identifier(docs[1]) != "sub-2" {
		t.Errorf("docs = %v", docs)
	}
}

func TestListProfilesNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	docs, err := newTestClient(server.URL).ListProfiles(context.Background(), testSession)
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Errorf("docs = %v, want empty slice", docs)
	}
}

func TestGetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ue_profiles/imsi-208930000000001" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"supi":"imsi-208930000000001","amf":"8000"}`))
	}))
	defer server.Close()

	doc, err := newTestClient(server.URL).GetProfile(context.Background(), testSession, "imsi-208930000000001")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if record.String(doc, "amf") != "8000" {
		t.Errorf("amf = %q", record.String(doc, "amf"))
	}
}

func TestCreateProfileSendsArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathProfiles {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(HeaderContentType) != ContentTypeJSON {
			t.Errorf("Content-Type = %q", r.Header.Get(HeaderContentType))
		}
		var body []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("body should be an array: %v", err)
		}
		if len(body) != 1 || body[0]["supi"] != "imsi-1" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := newTestClient(server.URL).CreateProfile(context.Background(), testSession, record.Document{"supi": "imsi-1"})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
}

func TestUpdateProfileStripsImmutableKeys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/ue_profiles/imsi-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		for _, k := range []string{"supi", "id", "userId", "createdAt"} {
			if _, ok := body[k]; ok {
				t.Errorf("body should not contain %q", k)
			}
		}
		if body["amf"] != "8001" {
			t.Errorf("amf = %v", body["amf"])
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	doc := record.Document{"supi": "imsi-1", "id": "x", "userId": "u", "createdAt": "2024-01-01T00:00:00Z", "amf": "8001"}
	if err := newTestClient(server.URL).UpdateProfile(context.Background(), testSession, "imsi-1", doc); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if _, ok := doc["supi"]; !ok {
		t.Error("UpdateProfile must not mutate the caller's document")
	}
}

func TestDeleteProfileNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ProblemDetails{
			Type:   "about:blank",
			Title:  "Not Found",
			Detail: "UE profile not found",
			Status: 404,
		})
	}))
	defer server.Close()

	err := newTestClient(server.URL).DeleteProfile(context.Background(), testSession, "imsi-9")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if !apiErr.IsNotFound() {
		t.Errorf("IsNotFound() = false")
	}
	if apiErr.Message != "UE profile not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details == nil || apiErr.Details.Title != "Not Found" {
		t.Errorf("Details = %+v", apiErr.Details)
	}
}

func TestGenerateProfiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathGenerate {
			t.Errorf("expected %s, got %s", PathGenerate, r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.NumUEs != 2 {
			t.Errorf("num_ues = %d, want 2", req.NumUEs)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"UE profiles generated","ue_profiles":[{"supi":"a"},{"supi":"b"}]}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).GenerateProfiles(context.Background(), testSession, 2)
	if err != nil {
		t.Fatalf("GenerateProfiles failed: %v", err)
	}
	if resp.Message != "UE profiles generated" || len(resp.Profiles) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestNotAuthenticated(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	calls := map[string]func(*Session) error{
		"Logout":           func(s *Session) error { return client.Logout(ctx, s) },
		"ListProfiles":     func(s *Session) error { _, err := client.ListProfiles(ctx, s); return err },
		"GetProfile":       func(s *Session) error { _, err := client.GetProfile(ctx, s, "x"); return err },
		"CreateProfile":    func(s *Session) error { return client.CreateProfile(ctx, s, record.Document{}) },
		"UpdateProfile":    func(s *Session) error { return client.UpdateProfile(ctx, s, "x", record.Document{}) },
		"DeleteProfile":    func(s *Session) error { return client.DeleteProfile(ctx, s, "x") },
		"GenerateProfiles": func(s *Session) error { _, err := client.GenerateProfiles(ctx, s, 1); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			for _, sess := range []*Session{nil, {Username: "admin"}} {
				if err := call(sess); !errors.Is(err, ErrNotAuthenticated) {
					t.Errorf("error = %v, want ErrNotAuthenticated", err)
				}
			}
		})
	}
	if called {
		t.Error("no request should be sent without a session")
	}
}

func TestServerErrorOpensCircuit(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type":"about:blank","title":"Internal Server Error","status":500}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	for i := 0; i < config.CBFailureThreshold; i++ {
		_, err := client.ListProfiles(context.Background(), testSession)
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsServerError() {
			t.Fatalf("iteration %d: expected server APIError, got %v", i, err)
		}
	}

	_, err := client.ListProfiles(context.Background(), testSession)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got: %v", err)
	}
	if !IsTransport(err) {
		t.Error("ErrCircuitOpen should be classified as transport failure")
	}
	if callCount != config.CBFailureThreshold {
		t.Errorf("callCount = %d, want %d", callCount, config.CBFailureThreshold)
	}
}

func TestClientErrorsDoNotOpenCircuit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Cannot update SUPI"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	for i := 0; i < config.CBFailureThreshold+1; i++ {
		err := client.UpdateProfile(context.Background(), testSession, "imsi-1", record.Document{})
		if errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("4xx should not trigger circuit breaker open (iteration %d)", i)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsBadRequest() {
			t.Fatalf("expected 400 APIError, got %v", err)
		}
	}
}

func TestConnectionError(t *testing.T) {
	client := newTestClient("http://127.0.0.1:59999")
	_, err := client.ListProfiles(context.Background(), testSession)

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectionError, got %T: %v", err, err)
	}
	if !IsTransport(err) || IsRejected(err) {
		t.Error("connection failure should be classified as transport")
	}
}

func TestInvalidResponseJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListProfiles(context.Background(), testSession)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"problem detail", `{"type":"about:blank","title":"Conflict","detail":"UE profile already exists","status":409}`, "UE profile already exists"},
		{"problem title only", `{"type":"about:blank","title":"Conflict","status":409}`, "Conflict"},
		{"error body", `{"error":"SUPI already exists"}`, "SUPI already exists"},
		{"plain text", "conflict\n", "conflict"},
		{"empty", "", "Conflict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := parseAPIError(http.StatusConflict, []byte(tt.body))
			if apiErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.want)
			}
			if !apiErr.IsConflict() {
				t.Error("IsConflict() = false")
			}
		})
	}
}

func TestConnectionErrorMethods(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	connErr := &ConnectionError{Cause: cause}

	expected := "connection error: dial tcp: connection refused"
	if connErr.Error() != expected {
		t.Errorf("Error() = %q, want %q", connErr.Error(), expected)
	}
	if !errors.Is(connErr, cause) {
		t.Error("expected errors.Is(connErr, cause) = true")
	}
}

func TestAPIErrorString(t *testing.T) {
	apiErr := &APIError{StatusCode: 500, Message: "internal error"}
	expected := "profile api error: 500 internal error"
	if apiErr.Error() != expected {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), expected)
	}
}

func TestUpdateBody(t *testing.T) {
	doc := record.Document{"supi": "imsi-1", "amf": "8000", "createdAt": "x"}
	body := UpdateBody(doc)
	if len(body) != 1 || body["amf"] != "8000" {
		t.Errorf("UpdateBody() = %v", body)
	}
	if len(doc) != 3 {
		t.Error("UpdateBody() mutated input")
	}
}

func TestSessionValid(t *testing.T) {
	var nilSession *Session
	if nilSession.Valid() {
		t.Error("nil session should be invalid")
	}
	if (&Session{Username: "a"}).Valid() {
		t.Error("session without token should be invalid")
	}
	if !testSession.Valid() {
		t.Error("session with token should be valid")
	}
}
