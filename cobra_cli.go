package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
go-xmldoc turns compiler-emitted XML documentation files into Markdown or HTML
reference pages. It parses each member's doc comment, normalizes embedded
markup, resolves cref cross-references, and renders one section per member:

  • Markdown output to stdout, a file, or one page per input under a directory
    (with a generated index and table of contents)
  • HTML output via --format html
  • A --refs index listing every cross-reference discovered while parsing,
    ready for a link-resolution pass
  • Shell completion generation and a gen-docs helper for the CLI's own docs

Point it at one or more .xml documentation files produced by your compiler and
publish the result alongside the rest of your docs.
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout}
	cmd := &cobra.Command{
		Use:           "go-xmldoc [flags] <doc.xml ...>",
		Short:         "Render XML documentation comments as Markdown",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.format, "format", "f", formatMarkdown, "output format: markdown or html")
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "write output to file, or one page per input when a directory")
	flags.StringVar(&app.opts.refsPath, "refs", "", "write the discovered cross-reference index to this file")
	flags.StringVar(&app.opts.baseURL, "base-url", "", "link cross-references under this base URL")
	flags.StringVar(&app.opts.title, "title", "", "title for the combined document or index page")
	flags.StringVar(&app.opts.configPath, "config", "", "config file (default "+defaultConfigName+" when present)")
	flags.BoolVar(&app.opts.preserveCrefs, "preserve-crefs", false, "keep raw cref attributes instead of rewriting them to xref placeholders")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cfg, err := loadConfig(app.opts.configPath)
		if err != nil {
			return err
		}
		mergeConfig(&app.opts, cfg, cmd.Flags().Changed)
		return app.execute(ctx, args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const longDesc = `Generate shell completion scripts for go-xmldoc.

The output should be evaluated by your shell. For example:

  # bash
  go-xmldoc completion bash > /usr/local/etc/bash_completion.d/go-xmldoc

  # zsh
  go-xmldoc completion zsh > "${fpath[1]}/_go-xmldoc"

  # fish
  go-xmldoc completion fish | source

  # PowerShell
  go-xmldoc completion powershell | Out-String | Invoke-Expression
`
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  go-xmldoc gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
