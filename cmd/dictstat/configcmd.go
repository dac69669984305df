package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/dictstat/internal/config"
	"github.com/verte-zerg/dictstat/internal/model"
)

var configInitForce bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file interactively",
		Args:  cobra.NoArgs,
		RunE:  runConfigInitCmd,
	}
	initCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config without asking")
	cmd.AddCommand(initCmd)
	return cmd
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := config.Write(path, config.Defaults()); err != nil {
			return err
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// configAnswers holds the form fields as text until they are validated.
type configAnswers struct {
	historyPath string
	watch       bool
	dailyGoal   string
	weeklyGoal  string
	topWords    string
	timezone    string
}

func answersFrom(cfg model.Config) configAnswers {
	return configAnswers{
		historyPath: cfg.HistoryPath,
		watch:       cfg.Watch,
		dailyGoal:   strconv.Itoa(cfg.DailyGoal),
		weeklyGoal:  strconv.Itoa(cfg.WeeklyGoal),
		topWords:    strconv.Itoa(cfg.TopWords),
		timezone:    cfg.Timezone,
	}
}

// apply copies the answers onto cfg; the caller validates the result.
func (a configAnswers) apply(cfg model.Config) (model.Config, error) {
	var err error
	cfg.HistoryPath = config.ExpandHome(strings.TrimSpace(a.historyPath))
	cfg.Watch = a.watch
	cfg.Timezone = strings.TrimSpace(a.timezone)
	if cfg.DailyGoal, err = strconv.Atoi(strings.TrimSpace(a.dailyGoal)); err != nil {
		return cfg, fmt.Errorf("invalid daily goal: %w", err)
	}
	if cfg.WeeklyGoal, err = strconv.Atoi(strings.TrimSpace(a.weeklyGoal)); err != nil {
		return cfg, fmt.Errorf("invalid weekly goal: %w", err)
	}
	if cfg.TopWords, err = strconv.Atoi(strings.TrimSpace(a.topWords)); err != nil {
		return cfg, fmt.Errorf("invalid top words: %w", err)
	}
	return cfg, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a positive whole number")
	}
	return nil
}

func validateTimezone(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown timezone %q", s)
	}
	return nil
}

func configForm(a *configAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("History file").
				Description("JSON log written by the dictation tool").
				Value(&a.historyPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("history path is required")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Reload the dashboard when the history file changes?").
				Value(&a.watch),
		),
		huh.NewGroup(
			huh.NewInput().Title("Daily word goal").Value(&a.dailyGoal).Validate(validatePositiveInt),
			huh.NewInput().Title("Weekly word goal").Value(&a.weeklyGoal).Validate(validatePositiveInt),
			huh.NewInput().Title("Words in the top words table").Value(&a.topWords).Validate(validatePositiveInt),
			huh.NewInput().
				Title("Timezone").
				Description("IANA name such as Europe/Berlin; blank for local time").
				Value(&a.timezone).
				Validate(validateTimezone),
		),
	).WithShowHelp(true)
}

func runConfigInitCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	current := fileCfg.Apply(config.Defaults())

	if _, err := os.Stat(path); err == nil && !configInitForce {
		overwrite := false
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("%s exists. Overwrite?", path)).
			Value(&overwrite)
		if err := confirm.Run(); err != nil {
			return configFormError(err)
		}
		if !overwrite {
			return nil
		}
	}

	answers := answersFrom(current)
	if err := configForm(&answers).Run(); err != nil {
		return configFormError(err)
	}
	cfg, err := answers.apply(current)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(path, cfg); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return err
}

func configFormError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("config init cancelled")
	}
	return fmt.Errorf("failed to run config form: %w", err)
}
