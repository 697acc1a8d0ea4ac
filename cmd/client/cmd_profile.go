package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-replica-sync/internal/store"
	"github.com/MKhiriev/go-replica-sync/models"
)

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"profiles"},
		Short:   "Manage synchronization profiles",
	}

	cmd.AddCommand(
		c.profileListCmd(),
		c.profileShowCmd(),
		c.profileCreateCmd(),
		c.profileDeleteCmd(),
		c.profileImportCmd(),
		c.profileExportCmd(),
	)
	return cmd
}

func (c *cli) profileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := c.app.Profiles().ListProfiles(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tROOT A\tROOT B\tUPDATED")
			for _, p := range profiles {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.RootA, p.RootB, p.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func (c *cli) profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one profile as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.Profiles().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return store.ExportTOML(cmd.OutOrStdout(), []models.Profile{p})
		},
	}
}

func (c *cli) profileCreateCmd() *cobra.Command {
	var p models.Profile

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a profile",
		Long: "create stores a new profile. Values missing from the flags are asked for\n" +
			"in an interactive form.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				p.Name = args[0]
			}
			if p.Name == "" || p.RootA == "" || p.RootB == "" {
				ignore := strings.Join(p.Ignore, ", ")
				if err := profileForm(&p, &ignore).Run(); err != nil {
					return err
				}
				p.Ignore = splitPatterns(ignore)
			}
			if err := p.Validate(); err != nil {
				return err
			}

			if err := c.app.Profiles().Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q created\n", p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&p.RootA, "root-a", "", "First root: a directory or http(s)://host:port")
	cmd.Flags().StringVar(&p.RootB, "root-b", "", "Second root: a directory or http(s)://host:port")
	cmd.Flags().StringVarP(&p.Username, "user", "u", "", "User name shown in password prompts")
	cmd.Flags().StringSliceVar(&p.Ignore, "ignore", nil, "Ignore pattern (repeatable)")

	return cmd
}

// profileForm asks for the fields of p. ignore holds the comma separated
// ignore patterns.
func profileForm(p *models.Profile, ignore *string) *huh.Form {
	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&p.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Root A").
				Description("A directory or http(s)://host:port").
				Value(&p.RootA).
				Validate(required("root A")),
			huh.NewInput().
				Title("Root B").
				Description("A directory or http(s)://host:port").
				Value(&p.RootB).
				Validate(required("root B")),
			huh.NewInput().
				Title("User name").
				Description("Optional, shown in password prompts").
				Value(&p.Username),
			huh.NewInput().
				Title("Ignore patterns").
				Description("Comma separated, e.g. *.tmp, .git/*").
				Value(ignore),
		),
	)
}

func splitPatterns(s string) []string {
	var patterns []string
	for _, pattern := range strings.Split(s, ",") {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			patterns = append(patterns, pattern)
		}
	}
	return patterns
}

func (c *cli) profileDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile and its archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !force {
				confirm := false
				err := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title("Confirm removal").
						Description(fmt.Sprintf("Delete profile %q? The next sync will treat every file as new.", name)).
						Value(&confirm),
				)).Run()
				if err != nil {
					return err
				}
				if !confirm {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing was deleted")
					return nil
				}
			}

			if err := c.app.Profiles().Delete(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q deleted\n", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without asking")

	return cmd
}

func (c *cli) profileImportCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file.toml>",
		Short: "Import profiles from a TOML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			profiles, err := store.ImportTOML(f)
			if err != nil {
				return err
			}

			repo := c.app.Profiles()
			for _, p := range profiles {
				if replace {
					err = repo.Save(cmd.Context(), p)
				} else {
					err = repo.Create(cmd.Context(), p)
				}
				if errors.Is(err, store.ErrProfileAlreadyExists) {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q: already exists (use --replace)\n", p.Name)
					continue
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %q\n", p.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Overwrite profiles that already exist")

	return cmd
}

func (c *cli) profileExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.toml]",
		Short: "Export every profile as TOML to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := c.app.Profiles().ListProfiles(cmd.Context())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return store.ExportTOML(w, profiles)
		},
	}
}
