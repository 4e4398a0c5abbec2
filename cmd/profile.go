package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Rorical/Nyssa/internal/config"
)

var (
	deleteYes  bool
	showOutput string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage API profiles",
	Long:  `Manage API profiles for the Gemini and OpenAI-compatible providers.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Fprintln(out, "Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Fprintf(out, "  %s%s\n", name, marker)
			printProfile(out, "    ", cfg.Profiles[name])
			fmt.Fprintln(out)
		}
		return nil
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		profile, err := cfg.Profile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch showOutput {
		case "yaml":
			return yaml.NewEncoder(out).Encode(redact(args[0], profile))
		case "text", "":
			fmt.Fprintf(out, "Profile: %s\n", args[0])
			printProfile(out, "", profile)
			return nil
		}
		return fmt.Errorf("unknown output format %q", showOutput)
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			prompt := promptui.Prompt{Label: "Profile name"}
			if name, err = prompt.Run(); err != nil {
				return fmt.Errorf("prompt failed: %w", err)
			}
		}
		if _, err := cfg.Profile(name); err == nil {
			return fmt.Errorf("%w: %s", config.ErrProfileExists, name)
		}

		profile, err := promptProfile(config.Profile{Provider: config.ProviderGemini, Model: config.DefaultModel})
		if err != nil {
			return err
		}
		if err := cfg.AddProfile(name, profile); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' added successfully!\n", name)
		return nil
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		name, err := profileArg(cfg, args, "Select profile to edit", "")
		if err != nil {
			return err
		}
		current, err := cfg.Profile(name)
		if err != nil {
			return err
		}

		profile, err := promptProfile(current)
		if err != nil {
			return err
		}
		if err := cfg.UpdateProfile(name, profile); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' updated successfully!\n", name)
		return nil
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		name, err := profileArg(cfg, args, "Select profile to delete", "")
		if err != nil {
			return err
		}
		if _, err := cfg.Profile(name); err != nil {
			return err
		}

		if !deleteYes {
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Delete profile '%s'", name),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
				return nil
			}
		}

		if err := cfg.DeleteProfile(name); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' deleted successfully!\n", name)
		return nil
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		name, err := profileArg(cfg, args, "Select profile to switch to", cfg.ActiveProfile)
		if errors.Is(err, errNoProfiles) {
			fmt.Fprintln(cmd.OutOrStdout(), "No other profiles available to switch to")
			return nil
		}
		if err != nil {
			return err
		}

		if err := switchProfile(name); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile '%s'\n", name)
		return nil
	},
}

func init() {
	showProfileCmd.Flags().StringVarP(&showOutput, "output", "o", "text", "output format (text, yaml)")
	deleteProfileCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")

	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}

var errNoProfiles = errors.New("no profiles to choose from")

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// profileArg returns the named argument, or lets the user pick one of the
// profiles other than exclude.
func profileArg(cfg *config.Config, args []string, label, exclude string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	names := make([]string, 0, len(cfg.Profiles))
	for _, name := range cfg.ProfileNames() {
		if name != exclude {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", errNoProfiles
	}

	prompt := promptui.Select{Label: label, Items: names}
	_, name, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection failed: %w", err)
	}
	return name, nil
}

// promptProfile asks for every profile field, offering current as defaults
func promptProfile(current config.Profile) (config.Profile, error) {
	profile := current

	providers := []string{config.ProviderGemini, config.ProviderOpenAI}
	cursor := 0
	if current.Provider == config.ProviderOpenAI {
		cursor = 1
	}
	providerPrompt := promptui.Select{Label: "Provider", Items: providers, CursorPos: cursor}
	_, provider, err := providerPrompt.Run()
	if err != nil {
		return profile, fmt.Errorf("selection failed: %w", err)
	}
	profile.Provider = provider

	fields := []struct {
		label  string
		value  *string
		masked bool
	}{
		{"API Key", &profile.APIKey, true},
		{"Model", &profile.Model, false},
		{"Base URL (optional)", &profile.BaseURL, false},
	}
	for _, field := range fields {
		prompt := promptui.Prompt{
			Label:     field.label,
			Default:   *field.value,
			AllowEdit: true,
		}
		if field.masked {
			prompt.Mask = '*'
		}
		value, err := prompt.Run()
		if err != nil {
			return profile, fmt.Errorf("prompt failed: %w", err)
		}
		*field.value = value
	}
	return profile, nil
}

func printProfile(out io.Writer, indent string, profile config.Profile) {
	provider := profile.Provider
	if provider == "" {
		provider = config.ProviderGemini
	}
	fmt.Fprintf(out, "%sProvider: %s\n", indent, provider)
	fmt.Fprintf(out, "%sModel: %s\n", indent, profile.Model)
	if profile.BaseURL != "" {
		fmt.Fprintf(out, "%sBase URL: %s\n", indent, profile.BaseURL)
	}
	hasKey := "Not set"
	if profile.APIKey != "" {
		hasKey = "Set (hidden)"
	}
	fmt.Fprintf(out, "%sAPI Key: %s\n", indent, hasKey)
}

type profileView struct {
	Name     string `yaml:"name"`
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`
	APIKey   string `yaml:"api_key"`
}

func redact(name string, profile config.Profile) profileView {
	view := profileView{
		Name:     name,
		Provider: profile.Provider,
		Model:    profile.Model,
		BaseURL:  profile.BaseURL,
		APIKey:   "unset",
	}
	if view.Provider == "" {
		view.Provider = config.ProviderGemini
	}
	if profile.APIKey != "" {
		view.APIKey = "set"
	}
	return view
}
