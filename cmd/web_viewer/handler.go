package main

import (
	"embed"
	"encoding/base64"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"shotbot/internal/database"
)

//go:embed templates/*.html
var templatesFS embed.FS

const resultsPerPage = 10

// journal чтение журнала ударов
type journal interface {
	ListShotResults(outcome string, limit, offset int) ([]database.ShotRecord, error)
	CountShotResults(outcome string) (int, error)
}

type PageData struct {
	Results     []database.ShotRecord
	CurrentPage int
	TotalPages  int
	TotalCount  int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Outcome     string
	Outcomes    []string
}

var outcomes = []string{"triggered", "timed_out", "error"}

func parseTemplates() (*template.Template, error) {
	return template.New("layout").Funcs(template.FuncMap{
		"base64encode": func(data []byte) string {
			return base64.StdEncoding.EncodeToString(data)
		},
		"formatDateTime": func(t time.Time) string {
			return t.Local().Format("02.01.2006 15:04:05")
		},
		"formatOutcome": func(outcome string) string {
			switch outcome {
			case "triggered":
				return "🎯 Попадание"
			case "timed_out":
				return "⌛ Мимо"
			case "error":
				return "❌ Ошибка"
			default:
				return outcome
			}
		},
		"sequence": func(current, total int) []int {
			var pages []int
			start := current - 2
			if start < 1 {
				start = 1
			}
			end := current + 2
			if end > total {
				end = total
			}
			for i := start; i <= end; i++ {
				pages = append(pages, i)
			}
			return pages
		},
	}).ParseFS(templatesFS, "templates/*.html")
}

// newHandler страница журнала с пагинацией и фильтром по исходу
func newHandler(j journal) (http.Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		outcome := r.URL.Query().Get("outcome")
		if outcome != "" && !knownOutcome(outcome) {
			http.Error(w, "unknown outcome", http.StatusBadRequest)
			return
		}
		page := 1
		if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
			page = p
		}

		totalCount, err := j.CountShotResults(outcome)
		if err != nil {
			http.Error(w, "DB error", http.StatusInternalServerError)
			return
		}
		totalPages := (totalCount + resultsPerPage - 1) / resultsPerPage
		if totalPages == 0 {
			totalPages = 1
		}
		if page > totalPages {
			page = totalPages
		}

		results, err := j.ListShotResults(outcome, resultsPerPage, (page-1)*resultsPerPage)
		if err != nil {
			http.Error(w, "DB error", http.StatusInternalServerError)
			return
		}

		data := PageData{
			Results:     results,
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  totalCount,
			HasPrev:     page > 1,
			HasNext:     page < totalPages,
			PrevPage:    page - 1,
			NextPage:    page + 1,
			Outcome:     outcome,
			Outcomes:    outcomes,
		}
		if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
			http.Error(w, "Template execution error: "+err.Error(), http.StatusInternalServerError)
		}
	})
	return mux, nil
}

func knownOutcome(o string) bool {
	for _, known := range outcomes {
		if o == known {
			return true
		}
	}
	return false
}
