package profilesync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/apps/console/internal/audit"
	"github.com/lvdund/ueprofiles/apps/console/internal/catalog"
	"github.com/lvdund/ueprofiles/apps/console/internal/config"
	"github.com/lvdund/ueprofiles/apps/console/internal/editor"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/pkg/apperr"
)

var testSession = &api.Session{Username: "admin", Token: "token-001"}

func setupAdapter(ctrl *gomock.Controller) (*Adapter, *MockProfileService, *MockReloader, *bytes.Buffer) {
	svc := NewMockProfileService(ctrl)
	rel := NewMockReloader(ctrl)
	var buf bytes.Buffer
	return NewAdapter(svc, rel, audit.NewLoggerWithWriter(&buf, "admin"), nil), svc, rel, &buf
}

func newCreateDraft(t *testing.T, supi string) editor.Draft {
	t.Helper()
	st := editor.NewStore()
	st.Initialize(nil)
	if err := st.SetScalar(record.FieldSUPI, supi); err != nil {
		t.Fatalf("SetScalar failed: %v", err)
	}
	return st.Draft()
}

func TestSubmitCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, svc, rel, buf := setupAdapter(ctrl)

	d := newCreateDraft(t, "imsi-001010000000001")

	gomock.InOrder(
		svc.EXPECT().CreateProfile(gomock.Any(), testSession, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *api.Session, doc record.Document) error {
				if record.Identifier(doc) != "imsi-001010000000001" {
					t.Errorf("supi = %q", record.Identifier(doc))
				}
				return nil
			}),
		rel.EXPECT().Reload(gomock.Any(), testSession).Return(nil),
	)

	if err := a.Submit(context.Background(), testSession, d); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"operation":"create"`) {
		t.Errorf("audit log missing create entry: %s", buf.String())
	}
}

func TestSubmitUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, svc, rel, _ := setupAdapter(ctrl)

	st := editor.NewStore()
	st.Initialize(record.Document{"supi": "sub-1", "imei": "old"})
	if err := st.SetScalar("imei", "new"); err != nil {
		t.Fatalf("SetScalar failed: %v", err)
	}

	gomock.InOrder(
		svc.EXPECT().UpdateProfile(gomock.Any(), testSession, "sub-1", record.Document{"supi": "sub-1", "imei": "new"}).Return(nil),
		rel.EXPECT().Reload(gomock.Any(), testSession).Return(nil),
	)

	if err := a.Submit(context.Background(), testSession, st.Draft()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
}

func TestSubmitCreateWithoutSUPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, _, _, _ := setupAdapter(ctrl)

	st := editor.NewStore()
	st.Initialize(nil)

	err := a.Submit(context.Background(), testSession, st.Draft())
	if !errors.Is(err, apperr.ErrSUPIRequired) {
		t.Errorf("expected ErrSUPIRequired, got %v", err)
	}
}

func TestSubmitFailureSkipsReload(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, svc, _, buf := setupAdapter(ctrl)

	rejected := &api.APIError{StatusCode: http.StatusConflict, Message: "exists"}
	svc.EXPECT().CreateProfile(gomock.Any(), testSession, gomock.Any()).Return(rejected)

	err := a.Submit(context.Background(), testSession, newCreateDraft(t, "sub-1"))
	if !api.IsRejected(err) {
		t.Errorf("expected rejection, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("failed mutation must not be audited: %s", buf.String())
	}
}

func TestSubmitReloadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, svc, rel, _ := setupAdapter(ctrl)

	transport := &api.ConnectionError{Cause: errors.New("connection refused")}
	svc.EXPECT().CreateProfile(gomock.Any(), testSession, gomock.Any()).Return(nil)
	rel.EXPECT().Reload(gomock.Any(), testSession).Return(transport)

	err := a.Submit(context.Background(), testSession, newCreateDraft(t, "sub-1"))
	if !errors.Is(err, ErrReloadFailed) {
		t.Errorf("expected ErrReloadFailed, got %v", err)
	}
	if !api.IsTransport(err) {
		t.Error("expected the transport cause to be preserved")
	}
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, svc, rel, buf := setupAdapter(ctrl)

	gomock.InOrder(
		svc.EXPECT().DeleteProfile(gomock.Any(), testSession, "sub-1").Return(nil),
		rel.EXPECT().Reload(gomock.Any(), testSession).Return(nil),
	)

	if err := a.Delete(context.Background(), testSession, "sub-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"operation":"delete"`) {
		t.Errorf("audit log missing delete entry: %s", buf.String())
	}
}

func TestDeleteNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, svc, _, _ := setupAdapter(ctrl)

	svc.EXPECT().DeleteProfile(gomock.Any(), testSession, "missing").
		Return(&api.APIError{StatusCode: http.StatusNotFound, Message: "not found"})

	err := a.Delete(context.Background(), testSession, "missing")
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsNotFound() {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, svc, rel, buf := setupAdapter(ctrl)

	gomock.InOrder(
		svc.EXPECT().GenerateProfiles(gomock.Any(), testSession, 3).Return(&api.GenerateResponse{
			Profiles: []record.Document{{"supi": "a"}, {"supi": "b"}, {"supi": "c"}},
		}, nil),
		rel.EXPECT().Reload(gomock.Any(), testSession).Return(nil),
	)

	n, err := a.Generate(context.Background(), testSession, 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
	if !strings.Contains(buf.String(), "count=3") {
		t.Errorf("audit log missing count: %s", buf.String())
	}
}

func TestGenerateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, svc, _, _ := setupAdapter(ctrl)

	svc.EXPECT().GenerateProfiles(gomock.Any(), testSession, 3).Return(nil, api.ErrCircuitOpen)

	n, err := a.Generate(context.Background(), testSession, 3)
	if !errors.Is(err, api.ErrCircuitOpen) || n != 0 {
		t.Errorf("Generate = (%d, %v)", n, err)
	}
}

func TestNilAuditLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMockProfileService(ctrl)
	rel := NewMockReloader(ctrl)
	a := NewAdapter(svc, rel, nil, nil)

	svc.EXPECT().DeleteProfile(gomock.Any(), testSession, "sub-1").Return(nil)
	rel.EXPECT().Reload(gomock.Any(), testSession).Return(nil)

	if err := a.Delete(context.Background(), testSession, "sub-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

// profileServer はUEプロファイルAPIのインメモリ実装
type profileServer struct {
	mu      sync.Mutex
	order   []string
	records map[string]map[string]any
}

func newProfileServer() *profileServer {
	return &profileServer{records: map[string]map[string]any{}}
}

func (s *profileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+testSession.Token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	supi := strings.TrimPrefix(r.URL.Path, api.PathProfiles+"/")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == api.PathProfiles:
		out := []map[string]any{}
		for _, id := range s.order {
			out = append(out, s.records[id])
		}
		json.NewEncoder(w).Encode(out)
	case r.Method == http.MethodPost && r.URL.Path == api.PathProfiles:
		var in []map[string]any
		json.NewDecoder(r.Body).Decode(&in)
		for _, rec := range in {
			id, _ := rec["supi"].(string)
			rec["createdAt"] = fmt.Sprintf("2024-01-%02dT00:00:00Z", len(s.order)+1)
			s.records[id] = rec
			s.order = append(s.order, id)
		}
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodPut:
		rec, ok := s.records[supi]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var in map[string]any
		json.NewDecoder(r.Body).Decode(&in)
		for k, v := range in {
			rec[k] = v
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		if _, ok := s.records[supi]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(s.records, supi)
		for i, id := range s.order {
			if id == supi {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestAdapterAgainstService(t *testing.T) {
	server := httptest.NewServer(newProfileServer())
	defer server.Close()

	client := api.NewClient(&config.Config{ProfileAPIURL: server.URL})
	cat := catalog.New(client)
	a := NewAdapter(client, cat, nil, nil)
	ctx := context.Background()

	for _, supi := range []string{"sub-1", "sub-2"} {
		if err := a.Submit(ctx, testSession, newCreateDraft(t, supi)); err != nil {
			t.Fatalf("Submit(%s) failed: %v", supi, err)
		}
	}
	if got := len(cat.Raw()); got != 2 {
		t.Fatalf("raw = %d, want 2", got)
	}
	if got := len(cat.Groups()); got != 2 {
		t.Errorf("groups = %d, want 2", got)
	}

	cat.SetSearchTerm("SUB-2")
	if f := cat.Filtered(); len(f) != 1 || record.Identifier(f[0]) != "sub-2" {
		t.Errorf("filtered = %v", f)
	}

	existing, ok := cat.Find("sub-1")
	if !ok {
		t.Fatal("sub-1 not found")
	}
	st := editor.NewStore()
	st.Initialize(existing)
	if err := st.SetScalar("imei", "356938035643809"); err != nil {
		t.Fatalf("SetScalar failed: %v", err)
	}
	if err := a.Submit(ctx, testSession, st.Draft()); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	updated, _ := cat.Find("sub-1")
	if record.String(updated, "imei") != "356938035643809" {
		t.Errorf("imei = %q", record.String(updated, "imei"))
	}

	if err := a.Delete(ctx, testSession, "sub-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := cat.Find("sub-1"); ok {
		t.Error("sub-1 should be gone after delete")
	}
	if got := len(cat.Raw()); got != 1 {
		t.Errorf("raw = %d, want 1", got)
	}

	err := a.Delete(ctx, testSession, "sub-1")
	if !api.IsRejected(err) {
		t.Errorf("second delete should be rejected, got %v", err)
	}
}
