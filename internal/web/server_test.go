package web

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.lost.host/meutraa/minefix/internal/history"
	"git.lost.host/meutraa/minefix/internal/parser"
)

const mineDocument = `#VERSION:0.83;
#TITLE:Mine Song;
#OFFSET:0.000000;
#BPMS:0.000=120.000;

#NOTEDATA:;
#STEPSTYPE:dance-single;
#DIFFICULTY:Beginner;
#NOTES:
M000
0000
0000
0000
;
`

const conflictDocument = `#VERSION:0.83;
#TITLE:Conflict Song;
#OFFSET:0.000000;
#BPMS:0.000=120.000;

#NOTEDATA:;
#STEPSTYPE:dance-single;
#DIFFICULTY:Beginner;
#NOTES:
M100
0000
0000
0000
;
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := &history.Store{}
	if err := store.Init(":memory:"); nil != err {
		t.Fatal(err)
	}
	t.Cleanup(store.Deinit)
	return &Server{Parser: &parser.DefaultParser{}, Store: store}
}

func upload(t *testing.T, srv *Server, path, document string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("sscfile", "song.ssc")
	if nil != err {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, document); nil != err {
		t.Fatal(err)
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); nil != err {
			t.Fatal(err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestIndexRedirects(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/scroll-normalizer" {
		t.Log("code", w.Code, "location", w.Header().Get("Location"))
		t.Fail()
	}
}

func TestFakeMinesForm(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/fake-mines", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "allow_split_timing") {
		t.Log("code", w.Code)
		t.Fail()
	}
}

func TestFakeMinesUpload(t *testing.T) {
	srv := newTestServer(t)
	w := upload(t, srv, "/fake-mines", mineDocument, nil)
	if w.Code != http.StatusOK {
		t.Fatal("code", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "song-fakemines.ssc") {
		t.Log("disposition", w.Header().Get("Content-Disposition"))
		t.Fail()
	}
	if !strings.Contains(w.Body.String(), "#FAKES:0=0.005;") {
		t.Log("body", w.Body.String())
		t.Fail()
	}

	runs, err := srv.Store.Recent(10)
	if nil != err || len(runs) != 1 || runs[0].Tool != "fake-mines" {
		t.Log("runs", runs, err)
		t.Fail()
	}
}

func TestFakeMinesConflictReport(t *testing.T) {
	srv := newTestServer(t)
	w := upload(t, srv, "/fake-mines", conflictDocument, nil)
	if w.Code != http.StatusOK {
		t.Fatal("code", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		t.Log("content type", w.Header().Get("Content-Type"))
		t.Fail()
	}
	if !strings.Contains(w.Body.String(), "ERROR: There are simultaneous mines and notes") {
		t.Log("body", w.Body.String())
		t.Fail()
	}
}

func TestScrollNormalizerUpload(t *testing.T) {
	srv := newTestServer(t)
	w := upload(t, srv, "/scroll-normalizer", mineDocument, nil)
	if w.Code != http.StatusOK {
		t.Fatal("code", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "#SCROLLS:0=1.000;") {
		t.Log("body", w.Body.String())
		t.Fail()
	}
}
