package http

import (
	"net/http"
	"strings"
	"testing"
)

func TestAdminEndpointsAreStubs(t *testing.T) {
	ts := startTestServer(t)

	cases := []struct {
		path string
		body string
		want int
	}{
		{"/admin/moderate", `{"room":"general","timestamp":1,"action":"delete"}`, http.StatusNotImplemented},
		{"/admin/moderate", `{"room":"general"}`, http.StatusBadRequest},
		{"/admin/manage-users", `{"user":"alice","role":"moderator"}`, http.StatusNotImplemented},
		{"/admin/manage-users", `not json`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		resp, err := ts.Client().Post(ts.URL+tc.path, "application/json", strings.NewReader(tc.body))
		if err != nil {
			t.Fatalf("post %s: %v", tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.want {
			t.Fatalf("%s with body %q: got status %d, want %d", tc.path, tc.body, resp.StatusCode, tc.want)
		}
	}
}
