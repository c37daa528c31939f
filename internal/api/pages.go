package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const themeCookie = "theme"

// Themes in the order they are offered on the settings page.
var Themes = []string{"Light", "Dark"}

type pageTemplate struct {
	tmpl  *template.Template
	title string
}

type navItem struct {
	Path   string
	Label  string
	Active bool
}

var navigation = []navItem{
	{Path: "/", Label: "Home"},
	{Path: "/finder", Label: "Recipe Finder"},
	{Path: "/about", Label: "About"},
	{Path: "/settings", Label: "Settings"},
}

type pageData struct {
	Title      string
	Theme      string
	ThemeClass string
	Nav        []navItem

	Categories []string

	Query    string
	Searched bool
	Header   []string
	Results  []resultRow

	Themes  []string
	Message string
}

type resultRow struct {
	Rank  int
	Score string
	Cells []string
}

func parsePages() (map[string]*pageTemplate, error) {
	titles := map[string]string{
		"home":     "Home",
		"finder":   "Recipe Finder",
		"about":    "About",
		"settings": "Settings",
	}

	pages := make(map[string]*pageTemplate, len(titles))
	for name, title := range titles {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = &pageTemplate{tmpl: tmpl, title: title}
	}
	return pages, nil
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r, "home")
	data.Categories = s.Engine.Categories()
	s.render(w, "home", data)
}

func (s *Server) handleFinder(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r, "finder")
	data.Query = r.URL.Query().Get("q")

	if query := strings.TrimSpace(data.Query); query != "" {
		data.Searched = true
		data.Header = s.Engine.Header()
		for _, hit := range s.Engine.Search("ui", query) {
			cells := make([]string, len(data.Header))
			for col := range data.Header {
				cells[col] = hit.Recipe.Value(col)
			}
			data.Results = append(data.Results, resultRow{
				Rank:  hit.Rank,
				Score: strconv.FormatFloat(hit.Score, 'f', 4, 64),
				Cells: cells,
			})
		}
	}

	s.render(w, "finder", data)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about", s.newPage(r, "about"))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r, "settings")
	s.render(w, "settings", data)
}

func (s *Server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	theme, ok := normalizeTheme(r.PostForm.Get("theme"))
	if !ok {
		http.Error(w, "Unknown theme", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    theme,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data := s.newPage(r, "settings")
	data.Theme = theme
	data.ThemeClass = strings.ToLower(theme)
	data.Message = themeMessage(theme)
	s.render(w, "settings", data)
}

func (s *Server) newPage(r *http.Request, name string) *pageData {
	theme := s.theme(r)

	nav := make([]navItem, len(navigation))
	copy(nav, navigation)
	for i := range nav {
		nav[i].Active = nav[i].Label == s.pages[name].title
	}

	return &pageData{
		Title:      s.pages[name].title,
		Theme:      theme,
		ThemeClass: strings.ToLower(theme),
		Nav:        nav,
		Themes:     Themes,
		Message:    themeMessage(theme),
	}
}

// theme reads the cookie, falling back to the configured default
func (s *Server) theme(r *http.Request) string {
	if c, err := r.Cookie(themeCookie); err == nil {
		if theme, ok := normalizeTheme(c.Value); ok {
			return theme
		}
	}
	if theme, ok := normalizeTheme(s.cfg.UI.DefaultTheme); ok {
		return theme
	}
	return Themes[0]
}

func (s *Server) render(w http.ResponseWriter, name string, data *pageData) {
	var buf bytes.Buffer
	if err := s.pages[name].tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.Logger.WithError(err).WithField("page", name).Error("Failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func normalizeTheme(value string) (string, bool) {
	for _, theme := range Themes {
		if strings.EqualFold(strings.TrimSpace(value), theme) {
			return theme, true
		}
	}
	return "", false
}

func themeMessage(theme string) string {
	return theme + " mode activated!"
}
