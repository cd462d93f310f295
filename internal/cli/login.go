package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fakestore/internal/models"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Username string
	Password string
}

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the store API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "account username (required)")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "account password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// SignupOptions holds flags for the signup command.
type SignupOptions struct {
	*RootOptions
	Username string
	Password string
	Email    string
}

func NewSignupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SignupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "account username (required)")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "account password (required)")
	cmd.Flags().StringVarP(&opts.Email, "email", "e", "", "account email (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runSignup(cmd *cobra.Command, opts *SignupOptions) error {
	a, err := buildApp(opts.RootOptions)
	if err != nil {
		return err
	}

	user, err := a.Auth.Signup(cmd.Context(), models.SignupCredentials{
		Username: opts.Username,
		Password: opts.Password,
		Email:    opts.Email,
	})
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "account created (user %d), log in with: fakestore login -u %s\n", user.Id, opts.Username)
	return nil
}

func runLogin(cmd *cobra.Command, opts *LoginOptions) error {
	a, err := buildApp(opts.RootOptions)
	if err != nil {
		return err
	}

	user, err := a.Auth.Login(cmd.Context(), models.Credentials{
		Username: opts.Username,
		Password: opts.Password,
	})
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "logged in as %s (user %d)\n", user.Username, user.Id)
	return nil
}
