package nwntlk

import (
	"context"
	"os"
	"os/exec"
	"testing"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/nwn_tlk"))
	if cli.binary != "/opt/nwn_tlk" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestCLIEncodeRequiresPaths(t *testing.T) {
	cli := NewCLI()
	if err := cli.Encode(context.Background(), "", "/tmp/out.tlk"); err == nil {
		t.Fatal("expected error when input path is empty")
	}
	if err := cli.Encode(context.Background(), "/tmp/in.json", ""); err == nil {
		t.Fatal("expected error when output path is empty")
	}
}

func TestCLIDecodeArguments(t *testing.T) {
	var capturedName string
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedName = name
		capturedArgs = append([]string(nil), args...)
		return exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperNoop")
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI(WithBinary("nwn_tlk"))
	if err := cli.Decode(context.Background(), "/data/dialog.tlk", "/tmp/dialog.json"); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if capturedName != "nwn_tlk" {
		t.Fatalf("unexpected binary: %q", capturedName)
	}
	want := []string{"-i", "/data/dialog.tlk", "-o", "/tmp/dialog.json"}
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
