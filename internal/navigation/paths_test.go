package navigation_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-methodlib/internal/editor"
	"github.com/goliatone/go-methodlib/internal/navigation"
)

func TestPathsBuildFromRouteConfig(t *testing.T) {
	paths, err := navigation.New(navigation.DefaultRouteConfig("https://methods.example/"), "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	cases := map[string]func() (string, error){
		"https://methods.example/methods/m-1":      func() (string, error) { return paths.Method("m-1") },
		"https://methods.example/methods/m-1/edit": func() (string, error) { return paths.EditMethod("m-1") },
		"https://methods.example/frameworks/public": func() (string, error) { return paths.Framework("public") },
		"https://methods.example/methods/new":       func() (string, error) { return paths.NewMethod() },
	}
	for want, build := range cases {
		got, err := build()
		if err != nil || got != want {
			t.Fatalf("expected %q, got %q err=%v", want, got, err)
		}
	}
	if got := paths.MethodPath("m-2"); got != "https://methods.example/methods/m-2" {
		t.Fatalf("unexpected method path %q", got)
	}
}

func TestNewRejectsUnknownGroup(t *testing.T) {
	if _, err := navigation.New(nil, "admin"); err == nil {
		t.Fatal("expected unknown group error")
	}
}

func TestHistoryRecordsDestinations(t *testing.T) {
	var nav editor.Navigator = navigation.NewHistory(nil)
	history := nav.(*navigation.History)
	if history.Last() != "" {
		t.Fatal("expected empty history")
	}
	nav.GoTo(context.Background(), "/methods/a")
	nav.GoTo(context.Background(), "/methods/b")
	if history.Last() != "/methods/b" || len(history.Paths()) != 2 {
		t.Fatalf("unexpected history %v", history.Paths())
	}
}
