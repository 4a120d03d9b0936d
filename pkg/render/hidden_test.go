package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.Hidden("group", 4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_csrf":    "token123",
		"group":    "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "keep"},
		{Name: "group", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}
