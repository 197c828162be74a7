package instance

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const testDir = "/data/instances"

var (
	idA = uuid.MustParse("6f1c9a52-3b5e-4f7a-9d2c-1e8b7a6c5d40")
	idB = uuid.MustParse("0c2d4e6f-8a1b-4c3d-8e5f-7a9b1c3d5e7f")
	idC = uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
)

func TestIndexRoundtrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		idx  Index
	}{
		{"empty", Index{Instances: []Info{}}},
		{"single", Index{Instances: []Info{{ID: idA, Name: "Honour run", OrderIndex: 0}}}},
		{"ordered", Index{Instances: []Info{
			{ID: idB, Name: "zeta", OrderIndex: 7},
			{ID: idA, Name: "alpha", OrderIndex: -1},
			{ID: idC, Name: "unicode ✓ name", OrderIndex: 3},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			if err := SaveIndex(fs, testDir, tt.idx); err != nil {
				t.Fatalf("SaveIndex() error: %v", err)
			}

			got, err := LoadIndex(fs, testDir)
			if err != nil {
				t.Fatalf("LoadIndex() error: %v", err)
			}

			if diff := cmp.Diff(tt.idx, got); diff != "" {
				t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveIndex_Format(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	idx := Index{Instances: []Info{{ID: idA, Name: "Foo", OrderIndex: 2}}}
	if err := SaveIndex(fs, testDir, idx); err != nil {
		t.Fatalf("SaveIndex() error: %v", err)
	}

	data, err := afero.ReadFile(fs, IndexPath(testDir))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	want := `{
  "instances": [
    {
      "id": "6f1c9a52-3b5e-4f7a-9d2c-1e8b7a6c5d40",
      "name": "Foo",
      "order_index": 2
    }
  ]
}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("index file mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveIndex_NilInstancesWritesEmptyArray(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := SaveIndex(fs, testDir, Index{}); err != nil {
		t.Fatalf("SaveIndex() error: %v", err)
	}

	data, err := afero.ReadFile(fs, IndexPath(testDir))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if want := "{\n  \"instances\": []\n}"; string(data) != want {
		t.Errorf("index file = %q, want %q", data, want)
	}
}

func TestLoadIndex_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
		want    error
	}{
		{"missing file", nil, ErrIO},
		{"invalid json", ptr("{not json"), ErrDeserialization},
		{"wrong shape", ptr(`{"instances": {"id": 1}}`), ErrDeserialization},
		{"bad uuid", ptr(`{"instances": [{"id": "nope", "name": "x", "order_index": 0}]}`), ErrDeserialization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			if tt.content != nil {
				if err := afero.WriteFile(fs, IndexPath(testDir), []byte(*tt.content), 0o644); err != nil {
					t.Fatalf("WriteFile() error: %v", err)
				}
			}

			_, err := LoadIndex(fs, testDir)
			if !errors.Is(err, tt.want) {
				t.Fatalf("LoadIndex() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadIndex_MissingWrapsNotExist(t *testing.T) {
	t.Parallel()

	_, err := LoadIndex(afero.NewMemMapFs(), testDir)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadIndex() error = %v, want to wrap fs.ErrNotExist", err)
	}
}

func TestLoadIndex_NullInstances(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, IndexPath(testDir), []byte(`{"instances": null}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	idx, err := LoadIndex(fs, testDir)
	if err != nil {
		t.Fatalf("LoadIndex() error: %v", err)
	}
	if idx.Instances == nil || len(idx.Instances) != 0 {
		t.Errorf("Instances = %#v, want empty non-nil slice", idx.Instances)
	}
}

func TestIndexRemove(t *testing.T) {
	t.Parallel()

	idx := Index{Instances: []Info{
		{ID: idA, Name: "a"},
		{ID: idB, Name: "b"},
		{ID: idA, Name: "a again"},
	}}

	if n := idx.Remove(idA); n != 2 {
		t.Errorf("Remove() = %d, want 2", n)
	}
	if n := idx.Remove(idC); n != 0 {
		t.Errorf("Remove() of absent id = %d, want 0", n)
	}

	want := []Info{{ID: idB, Name: "b"}}
	if diff := cmp.Diff(want, idx.Instances); diff != "" {
		t.Errorf("Instances mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexFindAndClone(t *testing.T) {
	t.Parallel()

	idx := Index{Instances: []Info{{ID: idA, Name: "a"}}}

	if _, ok := idx.Find(idB); ok {
		t.Error("Find() found an absent id")
	}

	clone := idx.Clone()
	clone.Instances[0].Name = "changed"
	clone.Append(Info{ID: idB})

	info, ok := idx.Find(idA)
	if !ok {
		t.Fatal("Find() did not find idA")
	}
	if info.Name != "a" {
		t.Errorf("original modified through clone: name = %q", info.Name)
	}
	if len(idx.Instances) != 1 {
		t.Errorf("original length = %d, want 1", len(idx.Instances))
	}
}

func ptr(s string) *string {
	return &s
}
