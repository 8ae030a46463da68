package handler

import (
	"html/template"
	"log"
	"path/filepath"

	"uni-marketplace/pkg/datetime"
)

// templateFuncs exposes the date formatter to every page template.
func templateFuncs(formatter *datetime.Formatter) template.FuncMap {
	return template.FuncMap{
		"displayDate": formatter.FormatForDisplay,
		"shortDate":   formatter.FormatDate,
	}
}

func mustParseTemplate(dir, name string, funcs template.FuncMap) *template.Template {
	tmpl, err := template.New(name).Funcs(funcs).ParseFiles(filepath.Join(dir, name))
	if err != nil {
		log.Fatalf("Failed to parse %s template: %v", name, err)
	}
	return tmpl
}
