package nwnerf

import (
	"context"
	"os"
	"os/exec"
	"testing"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/nwn_erf"))
	if cli.binary != "/opt/nwn_erf" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestCLIPackRequiresArguments(t *testing.T) {
	cli := NewCLI()
	if err := cli.Pack(context.Background(), "", "/tmp/out.hak"); err == nil {
		t.Fatal("expected error when input directory is empty")
	}
	if err := cli.Pack(context.Background(), "/tmp/stage", ""); err == nil {
		t.Fatal("expected error when output path is empty")
	}
}

func TestCLIPackArguments(t *testing.T) {
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		return exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperNoop")
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI()
	if err := cli.Pack(context.Background(), "/tmp/stage", "/out/content.hak"); err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}

	want := []string{"-e", "HAK", "-c", "/tmp/stage", "-f", "/out/content.hak"}
	if len(capturedArgs) != len(want) {
		t.Fatalf("unexpected args: %v", capturedArgs)
	}
	for i := range want {
		if capturedArgs[i] != want[i] {
			t.Fatalf("arg %d: got %q want %q", i, capturedArgs[i], want[i])
		}
	}
}

func TestHelperNoop(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	os.Exit(0)
}
