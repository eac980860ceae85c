package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hashcloud-io/hashcloud/types"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    types.Role
		wantErr bool
	}{
		{input: "manager", want: types.RoleManager},
		{input: "Viewer", want: types.RoleViewer},
		{input: "2", want: types.RoleManager},
		{input: "3", want: types.RoleViewer},
		{input: "owner", wantErr: true},
		{input: "1", wantErr: true},
		{input: "admin", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseRole(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseRole(%q) succeeded with %v, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseRole(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseRole(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// cliContext builds a cli.Context with the given string flag values set.
func cliContext(t *testing.T, values map[string]string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for name, value := range values {
		set.String(name, "", "")
		if err := set.Set(name, value); err != nil {
			t.Fatalf("set flag %s: %v", name, err)
		}
	}
	set.Duration("timeout", 0, "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hashcloud.yaml")
	content := "api_url: https://file.example.com\nkeyfile: /file/key\ntimeout: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := cliContext(t, map[string]string{
		"config":  path,
		"api-url": "https://flag.example.com",
	})

	cfg, err := loadConfig(c)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.APIURL != "https://flag.example.com" {
		t.Errorf("APIURL = %q, flag should win over file", cfg.APIURL)
	}
	if cfg.Keyfile != "/file/key" {
		t.Errorf("Keyfile = %q, file value should survive", cfg.Keyfile)
	}
	if cfg.Timeout.Duration != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout.Duration)
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hashcloud.yaml")
	if err := os.WriteFile(path, []byte("keyfile: /k\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := cliContext(t, map[string]string{"config": path})
	if _, err := loadConfig(c); err == nil {
		t.Error("expected error for config without api_url")
	}
}

func TestNewApp_CommandSet(t *testing.T) {
	app := NewApp("abc1234")

	want := map[string]bool{
		"list": false, "upload": false, "download": false,
		"share": false, "delete": false, "version": false,
	}
	for _, cmd := range app.Commands {
		if _, ok := want[cmd.Name]; ok {
			want[cmd.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s missing from app", name)
		}
	}
}

func TestListItems_RolesAndSizes(t *testing.T) {
	owner := "0xOwner"
	viewer := "0xViewer"
	records := []types.RemoteFileRecord{
		{
			Digest:      "aaaa",
			Filename:    "mine.txt",
			ContentSize: 2048,
			ACL:         types.ACL{owner: types.RoleOwner, viewer: types.RoleViewer},
		},
		{
			Digest:      "bbbb",
			Filename:    "theirs.txt",
			ContentSize: 10,
			ACL:         types.ACL{viewer: types.RoleOwner},
		},
	}

	items := listItems(owner, records)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Role != "owner" {
		t.Errorf("role on own file = %q, want owner", items[0].Role)
	}
	if items[1].Role != "none" {
		t.Errorf("role on foreign file = %q, want none", items[1].Role)
	}
	if items[0].Size != "2.0 KiB" {
		t.Errorf("size = %q, want 2.0 KiB", items[0].Size)
	}
}

func TestVersionString(t *testing.T) {
	got := versionString("abc1234")
	want := types.Version + " (commit: abc1234)"
	if got != want {
		t.Errorf("versionString = %q, want %q", got, want)
	}
}
