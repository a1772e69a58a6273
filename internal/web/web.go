// Package web содержит встроенные статические файлы браузерного фронтенда:
// страницу с формой подписки, таблицей и скриптом, работающим с API.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Index возвращает обработчик главной страницы.
func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			http.Error(w, "page not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

// Static возвращает обработчик статических файлов (css, js).
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
