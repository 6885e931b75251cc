// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enterpriseng/angular-patterns-mcp/src/cli"
	"github.com/enterpriseng/angular-patterns-mcp/src/logger"
)

const version = "1.3.3.7-testing"

// captureLogger records CLI output for assertions.
func captureLogger() (*bytes.Buffer, logger.Logger) {
	var buf bytes.Buffer
	log := logger.NewCLILogger()
	log.SetOutput(&buf)
	return &buf, log
}

func TestExecute_ValidateCleanComponent(t *testing.T) {
	code := `
import { Component, ChangeDetectionStrategy, signal } from '@angular/core';

@Component({
  selector: 'app-demo',
  standalone: true,
  changeDetection: ChangeDetectionStrategy.OnPush,
  template: '<div class="container-fluid">{{ count() }}</div>',
})
export class DemoComponent {
  readonly count = signal(0);
}
`
	tmpFile := filepath.Join(t.TempDir(), "demo.component.ts")
	if err := os.WriteFile(tmpFile, []byte(code), 0644); err != nil {
		t.Fatal(err)
	}

	buf, log := captureLogger()
	os.Args = []string{"cmd", "validate", "-f", tmpFile, "-t", "component"}
	if err := cli.Execute(context.Background(), version, log); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(buf.String(), "✅") {
		t.Errorf("expected success output, got %q", buf.String())
	}
}

func TestExecute_ValidateReportsIssues(t *testing.T) {
	code := `
import { Component } from '@angular/core';

@Component({ selector: 'app-demo', template: '<div class="custom-wrapper">x</div>' })
export class DemoComponent {}
`
	tmpFile := filepath.Join(t.TempDir(), "demo.component.ts")
	if err := os.WriteFile(tmpFile, []byte(code), 0644); err != nil {
		t.Fatal(err)
	}

	buf, log := captureLogger()
	os.Args = []string{"cmd", "validate", "-f", tmpFile, "-t", "component"}
	if err := cli.Execute(context.Background(), version, log); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Component must be standalone") {
		t.Errorf("expected standalone issue in output, got %q", out)
	}
	if !strings.Contains(out, "Use signals for reactive state") {
		t.Errorf("expected signals issue in output, got %q", out)
	}
}

func TestExecute_ValidateTableFormat(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "demo.service.ts")
	if err := os.WriteFile(tmpFile, []byte("export class DemoService {}"), 0644); err != nil {
		t.Fatal(err)
	}

	buf, log := captureLogger()
	os.Args = []string{"cmd", "validate", "-f", tmpFile, "-t", "service", "--table"}
	if err := cli.Execute(context.Background(), version, log); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(buf.String(), "|") {
		t.Errorf("expected markdown table output, got %q", buf.String())
	}
}

func TestExecute_ValidateNonExistentFile(t *testing.T) {
	_, log := captureLogger()
	os.Args = []string{"cmd", "validate", "-f", "/tmp/nonexistent-file-12345.ts"}
	if err := cli.Execute(context.Background(), version, log); err == nil {
		t.Error("expected error for non-existent input file")
	}
}

func TestExecute_GenerateComponent(t *testing.T) {
	buf, log := captureLogger()
	os.Args = []string{"cmd", "generate", "-t", "component", "-n", "UserList"}
	if err := cli.Execute(context.Background(), version, log); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "app-user-list") {
		t.Errorf("expected kebab-cased selector, got %q", out)
	}
	if !strings.Contains(out, "UserListComponent") {
		t.Errorf("expected PascalCase class name, got %q", out)
	}
}

func TestExecute_GenerateToFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "user-list.service.ts")

	_, log := captureLogger()
	os.Args = []string{"cmd", "generate", "-t", "service", "-n", "UserList", "-o", outFile}
	if err := cli.Execute(context.Background(), version, log); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(string(data), "UserListService") {
		t.Errorf("expected generated service in file, got %q", string(data))
	}
}

func TestExecute_GenerateUnknownType(t *testing.T) {
	_, log := captureLogger()
	os.Args = []string{"cmd", "generate", "-t", "directive", "-n", "Demo"}
	if err := cli.Execute(context.Background(), version, log); err == nil {
		t.Error("expected error for unknown template type")
	}
}

func TestExecute_GenerateWithCatalogOverride(t *testing.T) {
	overrideFile := filepath.Join(t.TempDir(), "override.json")
	doc := `{"styling": {"framework": "Bootstrap 5.3"}}`
	if err := os.WriteFile(overrideFile, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	buf, log := captureLogger()
	os.Args = []string{"cmd", "generate", "-t", "component", "-n", "UserList", "--catalog", overrideFile}
	if err := cli.Execute(context.Background(), version, log); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(buf.String(), "UserListComponent") {
		t.Errorf("expected generated component, got %q", buf.String())
	}
}

func TestExecute_ValidateRejectsCatalogFlag(t *testing.T) {
	// The override only affects catalog consumers, so validate does not accept it
	tmpFile := filepath.Join(t.TempDir(), "demo.component.ts")
	if err := os.WriteFile(tmpFile, []byte("export class DemoComponent {}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, log := captureLogger()
	os.Args = []string{"cmd", "validate", "-f", tmpFile, "--catalog", "team-rules.yaml"}
	err := cli.Execute(context.Background(), version, log)
	if err == nil {
		t.Fatal("expected unknown flag error")
	}
	if !strings.Contains(err.Error(), "unknown flag") {
		t.Errorf("expected unknown flag error, got %v", err)
	}
}
