package commands

import (
	"context"
	"flag"
	"io"

	"taskpilot/internal/config"
	"taskpilot/internal/exitcode"
	"taskpilot/internal/output"
	"taskpilot/internal/service"
)

func init() {
	Register(&SummaryCmd{})
	Register(&RecommendCmd{})
}

// SummaryCmd implements the summary command.
type SummaryCmd struct{}

func (c *SummaryCmd) Name() string                   { return "summary" }
func (c *SummaryCmd) Aliases() []string              { return nil }
func (c *SummaryCmd) Synopsis() string               { return "AI-generated project summary" }
func (c *SummaryCmd) Usage() string                  { return "taskpilot summary" }
func (c *SummaryCmd) NeedsAuth() bool                { return true }
func (c *SummaryCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SummaryCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	report, err := svc.Summary(ctx)
	if err != nil {
		return fail(errOut, err)
	}
	output.FormatReport(out, "Project Summary", report)
	return exitcode.Success
}

// RecommendCmd implements the recommend command.
type RecommendCmd struct{}

func (c *RecommendCmd) Name() string                   { return "recommend" }
func (c *RecommendCmd) Aliases() []string              { return nil }
func (c *RecommendCmd) Synopsis() string               { return "AI-generated task recommendations" }
func (c *RecommendCmd) Usage() string                  { return "taskpilot recommend" }
func (c *RecommendCmd) NeedsAuth() bool                { return true }
func (c *RecommendCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RecommendCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	report, err := svc.Recommendations(ctx)
	if err != nil {
		return fail(errOut, err)
	}
	output.FormatReport(out, "Task Recommendations", report)
	return exitcode.Success
}
