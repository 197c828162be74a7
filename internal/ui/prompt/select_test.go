package prompt

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lilydev/bg3mm/internal/instance"
)

var testInstances = []instance.Info{
	{ID: uuid.MustParse("6f1c9a52-3b5e-4f7a-9d2c-1e8b7a6c5d40"), Name: "Honour run"},
	{ID: uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479"), Name: "Tactician"},
}

func TestSelectModel_EnterPicksHighlighted(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Select instance", testInstances)
	updated, cmd := m.Update(keyPress("enter"))
	got := updated.(selectModel).result()

	if got.Cancelled {
		t.Fatal("enter should pick the highlighted instance")
	}
	if got.ID != testInstances[0].ID || got.Name != "Honour run" {
		t.Errorf("result = %+v, want first instance", got)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestSelectModel_Cancel(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"esc", "q", "ctrl+c"} {
		m := newSelectModel("Select instance", testInstances)
		updated, cmd := m.Update(keyPress(key))
		got := updated.(selectModel).result()
		if !got.Cancelled || got.ID != uuid.Nil {
			t.Errorf("%s: result = %+v, want cancelled", key, got)
		}
		if cmd == nil {
			t.Errorf("%s should quit", key)
		}
	}
}

func TestInstanceItem(t *testing.T) {
	t.Parallel()

	item := instanceItem{info: testInstances[1]}

	title := item.Title()
	if !strings.Contains(title, "Tactician") || !strings.Contains(title, "f47ac10b") {
		t.Errorf("Title() = %q, want name and short id", title)
	}
	if strings.Contains(title, testInstances[1].ID.String()) {
		t.Errorf("Title() = %q, should show only the short id", title)
	}
	if !strings.Contains(item.FilterValue(), testInstances[1].ID.String()) {
		t.Errorf("FilterValue() = %q, want the full id for filtering", item.FilterValue())
	}
}

func TestSelect_EmptyIsCancelled(t *testing.T) {
	t.Parallel()

	got, err := Select("Select instance", nil)
	if err != nil || !got.Cancelled {
		t.Errorf("Select(nil) = %+v, %v; want cancelled", got, err)
	}
}

func TestSelectModel_ViewDone(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Select instance", testInstances)
	if m.View().Content == "" {
		t.Error("View().Content should show the list before a choice")
	}
	m.cancelled = true
	if m.View().Content != "" {
		t.Error("View().Content should be empty once done")
	}
}
