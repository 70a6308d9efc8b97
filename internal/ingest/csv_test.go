package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "four column rows",
			input: "10,20,1,0.5\n11,21,2,1.0\n",
			want:  [][]string{{"10", "20", "1", "0.5"}, {"11", "21", "2", "1.0"}},
		},
		{
			name:  "ragged rows preserved",
			input: "10,20\n11,21,2,1.0,extra\n",
			want:  [][]string{{"10", "20"}, {"11", "21", "2", "1.0", "extra"}},
		},
		{
			name:  "blank lines skipped",
			input: "10,20,1,0.5\n\n , ,\n11,21,2,1.0\n",
			want:  [][]string{{"10", "20", "1", "0.5"}, {"11", "21", "2", "1.0"}},
		},
		{
			name:  "leading space trimmed",
			input: " 10, 20, 1, 0.5\n",
			want:  [][]string{{"10", "20", "1", "0.5"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadTable(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadTable() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadTable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadTableInvalidCSV(t *testing.T) {
	if _, err := ReadTable(strings.NewReader("10,\"unterminated\n")); err == nil {
		t.Error("ReadTable() should fail on malformed quoting")
	}
}

func TestReadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minutiae.csv")
	if err := os.WriteFile(path, []byte("10,20,1,0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTableFile(path)
	if err != nil {
		t.Fatalf("ReadTableFile() error = %v", err)
	}
	want := [][]string{{"10", "20", "1", "0.5"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadTableFile() = %v, want %v", got, want)
	}

	if _, err := ReadTableFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("ReadTableFile() should fail for a missing file")
	}
}
