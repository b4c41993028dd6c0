package main

import (
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shotbot/internal/database"
)

type fakeJournal struct {
	records    []database.ShotRecord
	gotOutcome string
	gotLimit   int
	gotOffset  int
	err        error
}

func (f *fakeJournal) ListShotResults(outcome string, limit, offset int) ([]database.ShotRecord, error) {
	f.gotOutcome, f.gotLimit, f.gotOffset = outcome, limit, offset
	return f.records, f.err
}

func (f *fakeJournal) CountShotResults(outcome string) (int, error) {
	return 25, f.err
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestJournalPage(t *testing.T) {
	j := &fakeJournal{records: []database.ShotRecord{{
		ID:        "5b1c6f0e-8a43-4f7e-9f38-3d0f1c7e2a11",
		ShotType:  "lob",
		Outcome:   "triggered",
		Sample:    12,
		Count:     900,
		Baseline:  120,
		Target:    image.Pt(750, 1248),
		Duration:  410 * time.Millisecond,
		ImageData: []byte{0x89, 'P', 'N', 'G'},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}}}
	h, err := newHandler(j)
	if err != nil {
		t.Fatal(err)
	}

	rec := get(t, h, "/?page=2&outcome=triggered")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if j.gotOutcome != "triggered" || j.gotLimit != resultsPerPage || j.gotOffset != resultsPerPage {
		t.Errorf("query = %q limit %d offset %d", j.gotOutcome, j.gotLimit, j.gotOffset)
	}
	body := rec.Body.String()
	for _, want := range []string{"Журнал ударов (25)", "lob", "750,1248", "data:image/png;base64,iVBORw==", "410ms"} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}

func TestJournalPageClampsPage(t *testing.T) {
	j := &fakeJournal{}
	h, err := newHandler(j)
	if err != nil {
		t.Fatal(err)
	}
	if rec := get(t, h, "/?page=99"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// 25 записей = 3 страницы
	if j.gotOffset != 2*resultsPerPage {
		t.Errorf("offset = %d, want %d", j.gotOffset, 2*resultsPerPage)
	}
}

func TestJournalPageErrors(t *testing.T) {
	h, err := newHandler(&fakeJournal{err: errors.New("connection refused")})
	if err != nil {
		t.Fatal(err)
	}
	if rec := get(t, h, "/"); rec.Code != http.StatusInternalServerError {
		t.Errorf("db failure status = %d", rec.Code)
	}
	if rec := get(t, h, "/?outcome=maybe"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown outcome status = %d", rec.Code)
	}
	if rec := get(t, h, "/favicon.ico"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d", rec.Code)
	}
}
