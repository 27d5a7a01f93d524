package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/extract"
	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/store"
)

const fencedClaim = "```json\n{\n" +
	`	"patient": {"name": "Jane Doe", "age": 42},
	"diagnoses": ["flu"],
	"medications": [],
	"procedures": [],
	"admission": {"was_admitted": false, "admission_date": null, "discharge_date": null},
	"total_amount": "1500.00"
}` + "\n```"

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) RecognizeText(context.Context, []byte, string) (string, error) {
	return f.text, f.err
}

type fakeFields struct {
	mu   sync.Mutex
	raw  string
	err  error
	seen []string
}

func (f *fakeFields) ExtractClaim(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	f.seen = append(f.seen, text)
	f.mu.Unlock()
	return f.raw, f.err
}

type fakeAnswerer struct {
	mu     sync.Mutex
	answer string
	err    error
	seen   [][2]string
}

func (f *fakeAnswerer) Answer(_ context.Context, documentText, question string) (string, error) {
	f.mu.Lock()
	f.seen = append(f.seen, [2]string{documentText, question})
	f.mu.Unlock()
	return f.answer, f.err
}

type fixture struct {
	store    *store.MemoryStore
	fields   *fakeFields
	answerer *fakeAnswerer
	server   *httptest.Server
}

func newFixture(t *testing.T, rec *fakeRecognizer, fields *fakeFields, answerer *fakeAnswerer) *fixture {
	t.Helper()
	if rec == nil {
		rec = &fakeRecognizer{text: "Patient: Jane Doe\nDx: flu"}
	}
	if fields == nil {
		fields = &fakeFields{raw: fencedClaim}
	}
	if answerer == nil {
		answerer = &fakeAnswerer{answer: "flu"}
	}

	st := store.NewMemoryStore()
	svc := NewService(nil, st, extract.NewExtractor(nil, rec), fields, answerer, 0)
	ts := httptest.NewServer(NewRouter(svc))
	t.Cleanup(ts.Close)

	return &fixture{store: st, fields: fields, answerer: answerer, server: ts}
}

func (f *fixture) postExtract(t *testing.T, contentType string, body []byte) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	resp, err := http.Post(f.server.URL+"/extract", contentType, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /extract: %v", err)
	}
	defer resp.Body.Close()

	var m map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, m
}

func (f *fixture) postAsk(t *testing.T, documentID, question string) (*http.Response, map[string]string) {
	t.Helper()
	body, _ := json.Marshal(AskRequest{DocumentID: documentID, Question: question})
	resp, err := http.Post(f.server.URL+"/ask", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /ask: %v", err)
	}
	defer resp.Body.Close()

	var m map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, m
}

func TestHealth_BeforeAnyUpload(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	resp, err := http.Get(f.server.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var hr HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hr.Status != "healthy" || hr.DocumentsStored != 0 {
		t.Errorf("health = %+v, want healthy/0", hr)
	}
}

func TestExtract_RawImageBody(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	resp, m := f.postExtract(t, "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, m)
	}

	// All schema keys plus the identifier must be present.
	for _, key := range []string{"patient", "diagnoses", "medications", "procedures", "admission", "total_amount", "document_id"} {
		if _, ok := m[key]; !ok {
			t.Errorf("response missing key %q", key)
		}
	}

	var id string
	if err := json.Unmarshal(m["document_id"], &id); err != nil || id == "" {
		t.Fatalf("document_id = %s", m["document_id"])
	}

	rec, ok := f.store.Get(id)
	if !ok {
		t.Fatal("record not stored")
	}
	if rec.RawText != "Patient: Jane Doe\nDx: flu" {
		t.Errorf("stored raw text = %q", rec.RawText)
	}
	if len(f.fields.seen) != 1 || f.fields.seen[0] != rec.RawText {
		t.Errorf("field extractor saw %v, want the extracted text", f.fields.seen)
	}
}

func TestExtract_Multipart(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="claim.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := io.Copy(part, bytes.NewReader([]byte{0x89, 0x50})); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	resp, m := f.postExtract(t, mw.FormDataContentType(), buf.Bytes())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, m)
	}
	if f.store.Count() != 1 {
		t.Errorf("store count = %d, want 1", f.store.Count())
	}
}

func TestExtract_UnsupportedType(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	resp, m := f.postExtract(t, "text/plain", []byte("just text"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var detail string
	if err := json.Unmarshal(m["detail"], &detail); err != nil || detail == "" {
		t.Errorf("detail = %s", m["detail"])
	}
	if f.store.Count() != 0 {
		t.Errorf("store mutated on rejected upload: count = %d", f.store.Count())
	}
	if len(f.fields.seen) != 0 {
		t.Error("field extractor invoked for unsupported type")
	}
}

func TestExtract_UnparseableModelOutput(t *testing.T) {
	fields := &fakeFields{raw: "Sorry, I cannot help with that."}
	f := newFixture(t, nil, fields, nil)

	resp, m := f.postExtract(t, "image/png", []byte("img"))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	var detail string
	if err := json.Unmarshal(m["detail"], &detail); err != nil || !strings.Contains(detail, "structured extraction failed") {
		t.Errorf("detail = %s", m["detail"])
	}
	if f.store.Count() != 0 {
		t.Error("partial result stored after parse failure")
	}
}

func TestExtract_TextExtractionFailure(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("model unavailable")}
	f := newFixture(t, rec, nil, nil)

	resp, m := f.postExtract(t, "image/png", []byte("img"))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	var detail string
	if err := json.Unmarshal(m["detail"], &detail); err != nil || !strings.Contains(detail, "model unavailable") {
		t.Errorf("detail should carry the underlying message, got %s", m["detail"])
	}
	if f.store.Count() != 0 {
		t.Error("store mutated on failed extraction")
	}
}

func TestExtract_ConcurrentUploadsGetDistinctIDs(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	const n = 30
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Post(f.server.URL+"/extract", "image/png", bytes.NewReader([]byte("img")))
			if err != nil {
				t.Errorf("POST /extract: %v", err)
				return
			}
			defer resp.Body.Close()
			var out ExtractResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Errorf("decode: %v", err)
				return
			}
			ids[i] = out.DocumentID
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, id := range ids {
		if id == "" {
			t.Fatal("empty document_id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate document_id %q", id)
		}
		seen[id] = struct{}{}
	}
	if f.store.Count() != n {
		t.Errorf("store count = %d, want %d", f.store.Count(), n)
	}
}

func TestAsk_RoundTrip(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	_, m := f.postExtract(t, "image/png", []byte("img"))
	var id string
	if err := json.Unmarshal(m["document_id"], &id); err != nil {
		t.Fatalf("document_id: %v", err)
	}

	resp, out := f.postAsk(t, id, "What is the diagnosis?")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, out)
	}
	if out["answer"] != "flu" {
		t.Errorf("answer = %q, want flu", out["answer"])
	}

	// Same id + question → identical answerer inputs each time.
	f.postAsk(t, id, "What is the diagnosis?")
	if len(f.answerer.seen) != 2 {
		t.Fatalf("answerer calls = %d, want 2", len(f.answerer.seen))
	}
	if f.answerer.seen[0] != f.answerer.seen[1] {
		t.Errorf("answerer inputs diverged: %v vs %v", f.answerer.seen[0], f.answerer.seen[1])
	}
}

func TestAsk_UnknownDocument(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	resp, out := f.postAsk(t, "3e9c2f40-0000-0000-0000-000000000000", "anything?")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(out["detail"], "not found") {
		t.Errorf("detail = %q, want not-found indication", out["detail"])
	}
	if len(f.answerer.seen) != 0 {
		t.Error("answerer invoked for unknown document")
	}
}

func TestAsk_MissingFields(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	resp, _ := f.postAsk(t, "", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAsk_AnswerFailure(t *testing.T) {
	answerer := &fakeAnswerer{err: errors.New("quota exceeded")}
	f := newFixture(t, nil, nil, answerer)

	_, m := f.postExtract(t, "image/png", []byte("img"))
	var id string
	if err := json.Unmarshal(m["document_id"], &id); err != nil {
		t.Fatalf("document_id: %v", err)
	}

	resp, out := f.postAsk(t, id, "What is the total?")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if !strings.Contains(out["detail"], "quota exceeded") {
		t.Errorf("detail = %q, want underlying message", out["detail"])
	}
}
