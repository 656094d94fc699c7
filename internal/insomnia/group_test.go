package insomnia

import (
	"testing"

	"github.com/docstack/swagger2insomnia/internal/spec"
	"github.com/google/go-cmp/cmp"
)

func tagsOf(folders []Folder) []string {
	out := make([]string, 0, len(folders))
	for _, f := range folders {
		out = append(out, f.Tag)
	}
	return out
}

func TestGroupByTag_PreferredTagsLeadFirstSeenFollows(t *testing.T) {
	t.Parallel()
	ops := []spec.Operation{
		{Path: "/g", Method: "get", Tags: []string{"game"}},
		{Path: "/w", Method: "get", Tags: []string{"wallet"}},
		{Path: "/c", Method: "get", Tags: []string{"chain"}},
		{Path: "/a", Method: "get", Tags: []string{"admin"}},
		{Path: "/m", Method: "get", Tags: []string{"meta"}},
	}
	got := tagsOf(GroupByTag(ops))
	want := []string{"meta", "chain", "game", "wallet", "admin"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("folder order mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByTag_UntaggedFallsBackToOther(t *testing.T) {
	t.Parallel()
	folders := GroupByTag([]spec.Operation{{Path: "/x", Method: "get"}})
	if len(folders) != 1 || folders[0].Tag != "other" {
		t.Fatalf("expected one %q folder, got %v", "other", tagsOf(folders))
	}
}

func TestGroupByTag_MultiTagAppearsInEveryFolder(t *testing.T) {
	t.Parallel()
	folders := GroupByTag([]spec.Operation{
		{Path: "/x", Method: "get", Tags: []string{"chain", "game"}},
	})
	if got := tagsOf(folders); !cmp.Equal(got, []string{"chain", "game"}) {
		t.Fatalf("folder tags: got %v", got)
	}
	for _, f := range folders {
		if len(f.Operations) != 1 || f.Operations[0].Path != "/x" {
			t.Fatalf("folder %q missing the operation: %+v", f.Tag, f.Operations)
		}
	}
}

func TestGroupByTag_MembersSortByPathThenMethod(t *testing.T) {
	t.Parallel()
	folders := GroupByTag([]spec.Operation{
		{Path: "/b", Method: "post", Tags: []string{"chain"}},
		{Path: "/a", Method: "put", Tags: []string{"chain"}},
		{Path: "/a", Method: "get", Tags: []string{"chain"}},
	})
	if len(folders) != 1 {
		t.Fatalf("expected one folder, got %v", tagsOf(folders))
	}
	var got []string
	for _, op := range folders[0].Operations {
		got = append(got, op.Method+" "+op.Path)
	}
	want := []string{"get /a", "put /a", "post /b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("member order mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByTag_SecuredWhenAnyMemberIs(t *testing.T) {
	t.Parallel()
	folders := GroupByTag([]spec.Operation{
		{Path: "/a", Method: "get", Tags: []string{"chain"}},
		{Path: "/b", Method: "get", Tags: []string{"chain"}, Secured: true},
		{Path: "/c", Method: "get", Tags: []string{"game"}},
	})
	if !folders[0].Secured {
		t.Errorf("chain folder should be secured")
	}
	if folders[1].Secured {
		t.Errorf("game folder should not be secured")
	}
}
