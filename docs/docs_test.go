package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"

	"github.com/studycards/backend/docs"
)

func TestDocsRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]struct {
			Security []map[string][]string `json:"security"`
		} `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}
	if doc.Info.Title != "Studycards API" {
		t.Errorf("unexpected title %q", doc.Info.Title)
	}

	routes := map[string]string{
		"/auth/register":                          "post",
		"/sets/{setID}/session":                   "get",
		"/study/sessions/{sessionID}/submit":      "post",
		"/study/sessions/{sessionID}/reset-stats": "post",
		"/progress/reset":                         "post",
		"/admin/questions/upload":                 "post",
	}
	for path, method := range routes {
		if _, ok := doc.Paths[path][method]; !ok {
			t.Errorf("missing %s %s", method, path)
		}
	}

	if len(doc.Paths["/auth/login"]["post"].Security) != 0 {
		t.Error("login must not require a bearer token")
	}
	if len(doc.Paths["/progress"]["get"].Security) == 0 {
		t.Error("progress must require a bearer token")
	}
}
