package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashcloud-io/hashcloud/types"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "json", want: FormatJSON},
		{input: "TABLE", want: FormatTable},
		{input: "yaml", want: FormatYAML},
		{input: "", want: ""},
		{input: "xml", wantErr: true},
		{input: "csv", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) succeeded, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func sampleRecords() []types.RemoteFileRecord {
	return []types.RemoteFileRecord{
		{
			Digest:      strings.Repeat("a", 64),
			Filename:    "notes.txt",
			ContentType: "text/plain",
			ContentSize: 2048,
		},
		{
			Digest:      strings.Repeat("b", 64),
			Filename:    "photo.png",
			ContentType: "image/png",
			ContentSize: 5 * 1024 * 1024,
		},
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatJSON, &buf)

	if err := r.Render(sampleRecords()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var decoded []types.RemoteFileRecord
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Filename != "notes.txt" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, &buf)

	if err := r.Render(sampleRecords()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"hash", "filename", "notes.txt", "photo.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_TableEmptySlice(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, &buf)

	if err := r.Render([]types.RemoteFileRecord{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(no results)") {
		t.Errorf("empty slice output = %q", buf.String())
	}
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatYAML, &buf)

	if err := r.Render(map[string]string{"account": "0xabc"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "account: 0xabc") {
		t.Errorf("yaml output = %q", buf.String())
	}
}

func TestRender_StructTableSkipsOmittedFields(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, &buf)

	fd := types.FileDescriptor{
		Name:     "big.bin",
		MimeType: "application/octet-stream",
		Size:     10,
		Payload:  []byte("0123456789"),
	}
	if err := r.Render(&fd); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "0123456789") {
		t.Errorf("payload bytes leaked into table output:\n%s", out)
	}
	if !strings.Contains(out, "big.bin") {
		t.Errorf("table output missing name:\n%s", out)
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{n: 0, want: "0 B"},
		{n: 512, want: "512 B"},
		{n: 1023, want: "1023 B"},
		{n: 1024, want: "1.0 KiB"},
		{n: 1536, want: "1.5 KiB"},
		{n: 1048576, want: "1.0 MiB"},
		{n: 20 * 1024 * 1024, want: "20.0 MiB"},
		{n: 3 * 1024 * 1024 * 1024, want: "3.0 GiB"},
	}

	for _, tt := range tests {
		if got := HumanSize(tt.n); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
