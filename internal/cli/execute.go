package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Execute runs the CLI with args and returns the process exit code.
// Errors are reported on stderr, or as a JSON envelope on stdout when
// --format json is in effect.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd, opts := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	code := GetExitCode(err)
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Silent {
		return code
	}

	f := &OutputFormatter{Format: opts.Format, Writer: stdout, ErrWriter: stderr, Verbose: opts.Verbose}
	if !f.IsJSON() {
		f.Format = "text"
	}
	if ferr := f.Error(fmt.Sprintf("E%03d", code), err.Error(), nil); ferr != nil {
		fmt.Fprintln(stderr, err)
	}
	return code
}
