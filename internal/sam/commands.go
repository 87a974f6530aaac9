// Where: internal/sam/commands.go
// What: Clause sets for `sam validate`, `sam package` and `sam deploy`.
// Why: Clause order here is the command-line contract with the SAM CLI.
package sam

import (
	"fmt"
	"strings"

	"github.com/poruru-code/samdeploy/internal/command"
	"github.com/poruru-code/samdeploy/internal/config"
)

// Subcommand names.
const (
	TaskValidate = "validate"
	TaskPackage  = "package"
	TaskDeploy   = "deploy"
)

// ErrorExitCode is the code carried by the error sentinel.
const ErrorExitCode = 1

// Invocation carries the inputs shared by every clause set.
type Invocation struct {
	Binary   string
	Settings config.Settings
	DryRun   bool
}

func (inv Invocation) binary() string {
	if strings.TrimSpace(inv.Binary) == "" {
		return "sam"
	}
	return inv.Binary
}

func (inv Invocation) builder(task string) *command.Builder {
	return command.New(inv.binary(), inv.DryRun).Task(task)
}

// ValidateCommand describes `sam validate` against the source template.
func ValidateCommand(inv Invocation) *command.Builder {
	s := inv.Settings
	return inv.builder(TaskValidate).
		Option("--debug", s.Debug).
		Resolved("--template-file", func() (string, error) {
			return ExistingFile(s.Template, "AWS SAM template")
		}).
		Argument("--profile", s.Profile).
		Argument("--region", s.Region)
}

// PackageCommand describes `sam package` from the source template to the packaged template.
func PackageCommand(inv Invocation) *command.Builder {
	s := inv.Settings
	return inv.builder(TaskPackage).
		Option("--force-upload", s.ForceUpload).
		Option("--use-json", s.UseJSON).
		Option("--debug", s.Debug).
		Resolved("--template-file", func() (string, error) {
			return ExistingFile(s.Template, "AWS SAM template")
		}).
		Resolved("--output-template-file", func() (string, error) {
			return WritableTarget(s.PackagedTemplate, "packaged template")
		}).
		Argument("--s3-bucket", s.S3Bucket).
		Argument("--s3-prefix", s.S3Prefix).
		Argument("--profile", s.Profile).
		Argument("--region", s.Region).
		Argument("--kms-key-id", s.KMSKeyID)
}

// DeployCommand describes `sam deploy` of the packaged template.
// --fail-on-empty-changeset wins when both changeset flags are set.
// role_arn is not passed to sam deploy.
func DeployCommand(inv Invocation) *command.Builder {
	s := inv.Settings
	return inv.builder(TaskDeploy).
		Option("--force-upload", s.ForceUpload).
		Option("--use-json", s.UseJSON).
		Option("--no-execute-changeset", s.NoExecuteChangeset).
		Option("--fail-on-empty-changeset", s.FailOnEmptyChangeset).
		Option("--no-fail-on-empty-changeset", s.NoFailOnEmptyChangeset && !s.FailOnEmptyChangeset).
		Option("--debug", s.Debug).
		Resolved("--template-file", func() (string, error) {
			return ExistingFile(s.PackagedTemplate, "packaged SAM template")
		}).
		Required("--stack-name", s.StackName).
		Argument("--s3-bucket", s.S3Bucket).
		Argument("--s3-prefix", s.S3Prefix).
		Argument("--profile", s.Profile).
		Argument("--region", s.Region).
		Argument("--kms-key-id", s.KMSKeyID).
		List("--capabilities", s.Capabilities).
		List("--notification-arns", s.NotificationARNs).
		List("--tags", s.Tags).
		Map("--parameter-overrides", pairs(s.ParameterOverrides))
}

// BuildCommand describes the host build command that precedes template
// generation. Its first argument takes the subcommand slot.
func BuildCommand(inv Invocation) (*command.Builder, bool) {
	argv := inv.Settings.BuildCommand
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, false
	}
	task := ""
	if len(argv) > 1 {
		task = argv[1]
	}
	b := command.New(argv[0], inv.DryRun).Task(task)
	for _, arg := range argv[min(2, len(argv)):] {
		b.Option(arg, true)
	}
	return b, true
}

// CommandFor returns the builder for a SAM subcommand.
func CommandFor(task string, inv Invocation) (*command.Builder, error) {
	switch task {
	case TaskValidate:
		return ValidateCommand(inv), nil
	case TaskPackage:
		return PackageCommand(inv), nil
	case TaskDeploy:
		return DeployCommand(inv), nil
	default:
		return nil, fmt.Errorf("unsupported sam task %q", task)
	}
}

// Logger is the subset of the leveled logger used while compiling.
type Logger interface {
	Info(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

// CommandLine consumes b. Dry-run commands log the banner with the command
// that would have run. Missing configuration and missing files are logged
// and turned into the error sentinel.
func CommandLine(b *command.Builder, logger Logger) []string {
	cmd, err := b.Build()
	if err != nil {
		if logger != nil {
			logger.Error(err.Error())
		}
		return command.ErrorCommand(ErrorExitCode)
	}
	if cmd.IsDryRun() && logger != nil {
		logger.Info(command.DryRunBanner + command.Render(cmd.Planned))
	}
	return cmd.Tokens
}

func pairs(params config.Parameters) []command.Pair {
	out := make([]command.Pair, 0, len(params))
	for _, p := range params {
		out = append(out, command.Pair{Key: p.Key, Value: p.Value})
	}
	return out
}
