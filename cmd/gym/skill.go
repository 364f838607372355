// ABOUTME: Install Claude Code skill for gym
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the gym skill for Claude Code.

This copies the skill definition to ~/.claude/skills/gym/
so Claude Code can use gym commands contextually.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		return installSkill(p, home, skillSkipConfirm)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func installSkill(p *prompter, home string, skipConfirm bool) error {
	out := p.out
	skillDir := filepath.Join(home, ".claude", "skills", "gym")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	// Show explanation
	fmt.Fprintln(out, "┌─────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(out, "│               Gym Skill for Claude Code                     │")
	fmt.Fprintln(out, "└─────────────────────────────────────────────────────────────┘")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This will install the gym skill, enabling Claude Code to:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  • Create and list workout routines")
	fmt.Fprintln(out, "  • Log exercises, sets, reps and weight")
	fmt.Fprintln(out, "  • Review history, progress and stats")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Destination:")
	fmt.Fprintf(out, "  %s\n", skillPath)
	fmt.Fprintln(out)

	// Check if already installed
	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(out)
	}

	// Ask for confirmation unless --yes flag is set
	if !skipConfirm {
		response, err := p.ask("Install the gym skill? [y/N] ")
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.ToLower(response)
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
		fmt.Fprintln(out)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(skillDir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	success.Fprintln(out, "✓ Installed gym skill successfully!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Try asking Claude: \"Log 3 sets of 5 squats at 225\" or \"How is my bench progressing?\"")
	return nil
}
